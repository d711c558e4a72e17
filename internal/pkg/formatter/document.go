package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/zant/accident-backend/internal/entity"
)

type itemKind int

const (
	sectionItem itemKind = iota
	subsectionItem
	fieldItem
	checkboxItem
	textItem
	spacerItem
)

// item is one line of the rendered form; both the PDF and the DOCX renderer
// walk the same flattened layout.
type item struct {
	kind    itemKind
	label   string
	value   string
	checked bool
}

func section(title string) item            { return item{kind: sectionItem, label: title} }
func subsection(title string) item         { return item{kind: subsectionItem, label: title} }
func field(label, value string) item       { return item{kind: fieldItem, label: label, value: value} }
func checkbox(checked bool, text string) item {
	return item{kind: checkboxItem, checked: checked, label: text}
}
func text(value string) item { return item{kind: textItem, value: value} }
func spacer() item           { return item{kind: spacerItem} }

// layoutReport flattens the notification into the official form order:
// injured person, reporter (when different), accident description, witnesses,
// attachments, response delivery, declaration and signature.
func layoutReport(report *entity.EWYPReport) []item {
	items := []item{}

	items = append(items, section("Dane osoby poszkodowanej"))
	if injured := report.InjuredPerson; injured != nil {
		items = append(items,
			field("PESEL", injured.Pesel),
			field("Rodzaj, seria i numer dokumentu", joinNonEmpty(injured.IDDocumentType, injured.IDDocumentNumber)),
			field("Imię", injured.FirstName),
			field("Nazwisko", injured.LastName),
			field("Data urodzenia", formatDate(injured.BirthDate)),
			field("Miejsce urodzenia", injured.BirthPlace),
			field("Numer telefonu", injured.PhoneNumber),
		)

		if address := injured.Address; address != nil {
			items = append(items, subsection("Adres zamieszkania osoby poszkodowanej"))
			items = append(items, addressFields(address.Street, address.HouseNumber, address.ApartmentNumber,
				address.PostalCode, address.City, address.Country)...)
		}

		if polish := injured.LastPolishStay; polish != nil && polish.Street != "" {
			items = append(items, subsection("Adres ostatniego miejsca zamieszkania w Polsce / adres miejsca pobytu"))
			items = append(items, addressFields(polish.Street, polish.HouseNumber, polish.ApartmentNumber,
				polish.PostalCode, polish.City, "")...)
		}
	}
	items = append(items, spacer())

	if reporter := report.Reporter; reporter != nil && reporter.IsDifferentFromInjuredPerson {
		items = append(items, section("Dane osoby, która zawiadamia o wypadku"),
			field("PESEL", reporter.Pesel),
			field("Rodzaj, seria i numer dokumentu", joinNonEmpty(reporter.IDDocumentType, reporter.IDDocumentNumber)),
			field("Imię", reporter.FirstName),
			field("Nazwisko", reporter.LastName),
			field("Data urodzenia", formatDate(reporter.BirthDate)),
			field("Numer telefonu", reporter.PhoneNumber),
		)

		if address := reporter.Address; address != nil {
			items = append(items, subsection("Adres zamieszkania osoby, która zawiadamia o wypadku"))
			items = append(items, addressFields(address.Street, address.HouseNumber, address.ApartmentNumber,
				address.PostalCode, address.City, address.Country)...)
		}
		items = append(items, spacer())
	}

	if accident := report.AccidentInfo; accident != nil {
		items = append(items, section("Informacja o wypadku"),
			field("1. Data wypadku", formatDate(accident.AccidentDate)),
			field("   Godzina wypadku", accident.AccidentTime),
			field("2. Miejsce wypadku", accident.PlaceOfAccident),
			field("3. Planowana godzina rozpoczęcia pracy w dniu wypadku", accident.PlannedWorkStartTime),
			field("   Planowana godzina zakończenia pracy w dniu wypadku", accident.PlannedWorkEndTime),
			field("4. Rodzaj doznanych urazów", accident.InjuriesDescription),
			field("5. Szczegółowy opis okoliczności, miejsca i przyczyn wypadku", accident.CircumstancesAndCauses),
			field("6. Czy była udzielona pierwsza pomoc medyczna", formatBool(accident.FirstAidGiven)),
		)
		if accident.FirstAidGiven {
			items = append(items, field("   Nazwa i adres placówki służby zdrowia", accident.FirstAidFacility))
		}
		items = append(items,
			field("7. Organ, który prowadził postępowanie w sprawie wypadku", accident.InvestigatingAuthority),
			field("8. Czy wypadek powstał podczas obsługi maszyn, urządzeń", formatBool(accident.AccidentDuringMachineOperation)),
		)
		if accident.AccidentDuringMachineOperation {
			items = append(items, field("   Opis stanu technicznego i użytkowania", accident.MachineConditionDescription))
		}
		items = append(items,
			field("9. Czy maszyna, urządzenie posiada atest/deklarację zgodności", formatBool(accident.MachineHasCertificate)),
			field("10. Czy maszyna, urządzenie zostało wpisane do ewidencji środków trwałych", formatBool(accident.MachineInFixedAssetsRegister)),
			spacer(),
		)
	}

	if len(report.Witnesses) > 0 {
		items = append(items, section("Dane świadków wypadku"))
		for i, witness := range report.Witnesses {
			items = append(items, subsection(fmt.Sprintf("Świadek wypadku – %d", i+1)),
				field("Imię", witness.FirstName),
				field("Nazwisko", witness.LastName),
			)
			items = append(items, addressFields(witness.Street, witness.HouseNumber, witness.ApartmentNumber,
				witness.PostalCode, witness.City, witness.Country)...)
		}
		items = append(items, spacer())
	}

	if attachments := report.Attachments; attachments != nil {
		items = append(items, section("Załączniki"),
			checkbox(attachments.HospitalCardCopy, "kserokopia karty informacyjnej ze szpitala/ zaświadczenia o udzieleniu pierwszej pomocy"),
			checkbox(attachments.ProsecutorDecisionCopy, "kserokopia postanowienia prokuratury"),
			checkbox(attachments.PowerOfAttorneyCopy, "skan pełnomocnictwa"),
			checkbox(attachments.DeathDocsCopy, "kserokopia dokumentów dotyczących zgonu"),
			checkbox(attachments.HasOtherDocuments, "inne dokumenty"),
		)
		if attachments.HasOtherDocuments {
			for _, doc := range attachments.OtherDocuments {
				items = append(items, field("  - ", doc))
			}
		}
		items = append(items, spacer())
	}

	items = append(items, section("Sposób odbioru odpowiedzi"),
		text(formatDeliveryMethod(report.ResponseDeliveryMethod)),
		spacer(),
	)

	if signature := report.Signature; signature != nil {
		items = append(items, section("Oświadczenie i podpis"),
			text(declarationText),
			field("Data", formatDate(signature.DeclarationDate)),
			field("Czytelny podpis", signature.SignatureName),
		)
	}

	return items
}

func addressFields(street, houseNumber, apartmentNumber, postalCode, city, country string) []item {
	fields := []item{
		field("Ulica", street),
		field("Numer domu", houseNumber),
		field("Numer lokalu", apartmentNumber),
		field("Kod pocztowy", postalCode),
		field("Miejscowość", city),
	}
	if country != "" {
		fields = append(fields, field("Nazwa państwa", country))
	}
	return fields
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

// formatDate rewrites ISO dates into the dd/MM/yyyy the paper form uses;
// anything unparseable passes through untouched.
func formatDate(date string) string {
	if date == "" {
		return ""
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("02/01/2006")
}

func formatBool(value bool) string {
	if value {
		return "TAK"
	}
	return "NIE"
}

func formatDeliveryMethod(method string) string {
	switch method {
	case entity.DeliveryPickupAtZUS:
		return "W placówce ZUS (osobiście lub przez osobę upoważnioną)"
	case entity.DeliveryByMailToAddress:
		return "Pocztą na adres korespondencyjny"
	case entity.DeliveryToPUEAccount:
		return "Na konto na Platformie Usług Elektronicznych (PUE ZUS)"
	default:
		return method
	}
}
