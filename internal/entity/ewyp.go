package entity

import "time"

type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "DRAFT"
	ReportStatusSubmitted ReportStatus = "SUBMITTED"
)

// Response delivery methods for the EWYP notification.
const (
	DeliveryPickupAtZUS     = "PICKUP_AT_ZUS"
	DeliveryByMailToAddress = "BY_MAIL_TO_ADDRESS"
	DeliveryToPUEAccount    = "TO_PUE_ACCOUNT"
)

// Address is a generic postal address used across the EWYP form.
type Address struct {
	Street          string `json:"street,omitempty"`
	HouseNumber     string `json:"houseNumber,omitempty"`
	ApartmentNumber string `json:"apartmentNumber,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	City            string `json:"city,omitempty"`
	Country         string `json:"country,omitempty"`
}

// PolishAddress is the last address of residence or stay in Poland.
type PolishAddress struct {
	Street          string `json:"street,omitempty"`
	HouseNumber     string `json:"houseNumber,omitempty"`
	ApartmentNumber string `json:"apartmentNumber,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	City            string `json:"city,omitempty"`
}

// BusinessAddress is the address of the non-agricultural business activity.
type BusinessAddress struct {
	Street          string `json:"street,omitempty"`
	HouseNumber     string `json:"houseNumber,omitempty"`
	ApartmentNumber string `json:"apartmentNumber,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	City            string `json:"city,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
}

// InjuredPerson holds section I of the EWYP form.
type InjuredPerson struct {
	Pesel            string           `json:"pesel,omitempty"`
	IDDocumentType   string           `json:"idDocumentType,omitempty"`
	IDDocumentNumber string           `json:"idDocumentNumber,omitempty"`
	FirstName        string           `json:"firstName,omitempty"`
	LastName         string           `json:"lastName,omitempty"`
	BirthDate        string           `json:"birthDate,omitempty"`
	BirthPlace       string           `json:"birthPlace,omitempty"`
	PhoneNumber      string           `json:"phoneNumber,omitempty"`
	Address          *Address         `json:"address,omitempty"`
	LastPolishStay   *PolishAddress   `json:"lastPolishAddressOrStay,omitempty"`
	BusinessAddress  *BusinessAddress `json:"nonAgriculturalBusinessAddress,omitempty"`
}

// Reporter holds section II of the form, filled only when the notifying
// person is not the injured person.
type Reporter struct {
	IsDifferentFromInjuredPerson bool     `json:"isDifferentFromInjuredPerson"`
	Pesel                        string   `json:"pesel,omitempty"`
	IDDocumentType               string   `json:"idDocumentType,omitempty"`
	IDDocumentNumber             string   `json:"idDocumentNumber,omitempty"`
	FirstName                    string   `json:"firstName,omitempty"`
	LastName                     string   `json:"lastName,omitempty"`
	BirthDate                    string   `json:"birthDate,omitempty"`
	PhoneNumber                  string   `json:"phoneNumber,omitempty"`
	Address                      *Address `json:"address,omitempty"`
}

// AccidentInfo holds section III, the accident description.
type AccidentInfo struct {
	AccidentDate                   string `json:"accidentDate,omitempty"`
	AccidentTime                   string `json:"accidentTime,omitempty"`
	PlannedWorkStartTime           string `json:"plannedWorkStartTime,omitempty"`
	PlannedWorkEndTime             string `json:"plannedWorkEndTime,omitempty"`
	PlaceOfAccident                string `json:"placeOfAccident,omitempty"`
	InjuriesDescription            string `json:"injuriesDescription,omitempty"`
	CircumstancesAndCauses         string `json:"circumstancesAndCauses,omitempty"`
	FirstAidGiven                  bool   `json:"firstAidGiven"`
	FirstAidFacility               string `json:"firstAidFacility,omitempty"`
	InvestigatingAuthority         string `json:"investigatingAuthority,omitempty"`
	AccidentDuringMachineOperation bool   `json:"accidentDuringMachineOperation"`
	MachineConditionDescription    string `json:"machineConditionDescription,omitempty"`
	MachineHasCertificate          bool   `json:"machineHasCertificate"`
	MachineInFixedAssetsRegister   bool   `json:"machineInFixedAssetsRegister"`
}

// WitnessInfo is one witness entry of section IV.
type WitnessInfo struct {
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	Street          string `json:"street,omitempty"`
	HouseNumber     string `json:"houseNumber,omitempty"`
	ApartmentNumber string `json:"apartmentNumber,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	City            string `json:"city,omitempty"`
	Country         string `json:"country,omitempty"`
}

// Attachments lists documents attached to the notification.
type Attachments struct {
	HospitalCardCopy       bool     `json:"hasHospitalCardCopy"`
	ProsecutorDecisionCopy bool     `json:"hasProsecutorDecisionCopy"`
	PowerOfAttorneyCopy    bool     `json:"hasPowerOfAttorneyCopy"`
	DeathDocsCopy          bool     `json:"hasDeathDocsCopy"`
	HasOtherDocuments      bool     `json:"hasOtherDocuments"`
	OtherDocuments         []string `json:"otherDocuments,omitempty"`
}

// Signature closes the form with the truthfulness declaration.
type Signature struct {
	DeclarationDate string `json:"declarationDate,omitempty"`
	SignatureName   string `json:"signatureName,omitempty"`
}

// EWYPReport is the official "Zawiadomienie o wypadku" notification form.
type EWYPReport struct {
	ID                      string         `json:"id"`
	InjuredPerson           *InjuredPerson `json:"injuredPerson,omitempty"`
	Reporter                *Reporter      `json:"reporter,omitempty"`
	AccidentInfo            *AccidentInfo  `json:"accidentInfo,omitempty"`
	Witnesses               []WitnessInfo  `json:"witnesses,omitempty"`
	Attachments             *Attachments   `json:"attachments,omitempty"`
	DocumentsToDeliverLater []string       `json:"documentsToDeliverLater,omitempty"`
	ResponseDeliveryMethod  string         `json:"responseDeliveryMethod,omitempty"`
	Signature               *Signature     `json:"signature,omitempty"`
	Status                  ReportStatus   `json:"status"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
}

// ValidationResult is the outcome of a report completeness check.
type ValidationResult struct {
	Valid         bool     `json:"valid"`
	MissingFields []string `json:"missingFields"`
}
