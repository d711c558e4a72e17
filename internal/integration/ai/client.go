package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/zant/accident-backend/internal/entity"
	"go.uber.org/zap"
)

// circumstancesSystemPrompt instructs the model to audit an accident
// description against the five facts an inspector needs and to answer with
// clarifying questions as a JSON object.
const circumstancesSystemPrompt = `Jesteś asystentem BHP weryfikującym kompletność opisu wypadku przy pracy.
Twoim zadaniem jest sprawdzenie, czy opis zawiera 5 KLUCZOWYCH ELEMENTÓW.

ZASADA NACZELNA: Zwracasz WYŁĄCZNIE obiekt JSON. Żadnego innego tekstu.
Struktura JSON: { "questions_count": liczba, "questions": [ { "id": liczba, "text": "tekst_pytania" } ] }

### LISTA KONTROLNA (5 ELEMENTÓW WYMAGANYCH)
Musisz zadać pytanie o każdy element z poniższej listy, którego brakuje w opisie lub jest zbyt ogólny:

1. CZAS: Data i godzina (Samo "rano" lub "dzisiaj" to za mało – musi być konkret).
2. MIEJSCE: Konkretne miejsce zdarzenia (Samo "w pracy" to za mało – musi być np. "na hali", "w biurze", "przy maszynie X").
3. CZYNNOŚĆ: Co dokładnie robiła osoba w chwili wypadku? (np. "niosłem karton", "schodziłem z drabiny").
4. PRZYCZYNA: Co się wydarzyło? (np. "poślizgnięcie na plamie oleju", "upadek z wysokości", "awaria narzędzia").
5. URAZ: Jaka część ciała i jaki skutek? (np. "rana cięta dłoni", "skręcenie kostki").

### ALGORYTM DZIAŁANIA
1. Przeczytaj opis użytkownika.
2. Sprawdź po kolei każdy z 5 punktów listy kontrolnej.
3. Jeżeli w opisie brakuje punktu -> Generujesz pytanie.
4. Jeżeli opis punktu jest szczątkowy (np. tylko "boli mnie ręka" bez rodzaju urazu) -> Generujesz pytanie doprecyzowujące.
5. Obecność jednego elementu (np. czasu) NIE ZWALNIA z pytania o pozostałe brakujące elementy! To najczęstszy błąd – unikaj go.
6. Jeśli opis zawiera wszystkie 5 elementów w sposób konkretny -> Zwróć "questions_count": 0.

### ZASADY PYTAŃ
- Maksymalnie 5 pytań.
- Pytania muszą być po polsku, krótkie i konkretne.
- Nie używaj słowa "Czy" na początku.
- Jedno pytanie dotyczy jednego brakującego elementu.
- Nie pytaj o BHP, kaski, buty czy szkolenia. Interesują nas tylko fakty o przebiegu zdarzenia.

### PRZYKŁADY (Ucz się na nich)

PRZYKŁAD 1 (Opis niekompletny):
Opis: "Złamałem nogę dzisiaj rano."
Analiza:
- Czas: Jest ("dzisiaj rano") -> OK (ewentualnie dopytać o godzinę, ale jest nieźle).
- Miejsce: BRAK -> Pytanie 1.
- Czynność: BRAK -> Pytanie 2.
- Przyczyna: BRAK -> Pytanie 3.
- Uraz: Jest ("złamanie nogi") -> OK.
Wynik JSON: Ma zawierać 3 pytania (o miejsce, czynność i przyczynę).

PRZYKŁAD 2 (Opis kompletny):
Opis: "W dniu 12.05 o godzinie 10:00 na magazynie podczas zdejmowania paczki z regału potknąłem się o paletę. Upadłem na lewy bok i stłukłem bark."
Analiza:
- Czas: Jest (data, godzina) -> OK.
- Miejsce: Jest (magazyn) -> OK.
- Czynność: Jest (zdejmowanie paczki) -> OK.
- Przyczyna: Jest (potknięcie o paletę) -> OK.
- Uraz: Jest (stłuczenie barku) -> OK.
Wynik JSON: "questions_count": 0, "questions": []

### TERAZ PRZEANALIZUJ PONIŻSZY OPIS UŻYTKOWNIKA I WYGENERUJ JSON:`

// extractionSystemPrompt frames the slot-filling flow. The per-turn details
// (field catalog, current draft, user message) go into the user message built
// by buildExtractionPrompt.
const extractionSystemPrompt = "Jesteś asystentem ZUS do zgłaszania wypadków przy pracy dla osób prowadzących działalność gospodarczą. Odpowiadasz wyłącznie obiektem JSON."

// Client wraps a Provider with the domain prompts, tolerant response parsing
// and the no-surprises failure policy: extraction never returns an error to
// the caller, question generation reports failures in the result body.
type Client struct {
	provider Provider
	logger   *zap.Logger
}

func NewClient(provider Provider, logger *zap.Logger) *Client {
	return &Client{provider: provider, logger: logger}
}

// ProviderName returns the configured provider selector.
func (c *Client) ProviderName() string {
	return c.provider.Name()
}

// ExtractReportData submits one conversation turn for slot extraction.
// Whatever goes wrong with the model, the user still gets a usable reply:
// a missing credential or a failed call degrades to the offline fallback,
// an unparseable reply to the canned clarifying question.
func (c *Client) ExtractReportData(ctx context.Context, state *entity.ConversationState, userMessage string, requiredFields []entity.RequiredField) *entity.ExtractionResult {
	if !c.provider.Configured() {
		ctxzap.Warn(ctx, "AI provider has no API key, using offline fallback",
			zap.String("provider", c.provider.Name()))
		return c.offlineFallback()
	}

	prompt := buildExtractionPrompt(state, userMessage, requiredFields)

	raw, err := c.provider.Generate(ctx, extractionSystemPrompt, prompt)
	if err != nil {
		ctxzap.Error(ctx, "AI extraction call failed, using offline fallback",
			zap.String("provider", c.provider.Name()), zap.Error(err))
		return c.offlineFallback()
	}

	result, err := parseExtraction(raw)
	if err != nil {
		ctxzap.Warn(ctx, "AI reply is not a valid extraction envelope",
			zap.String("provider", c.provider.Name()), zap.Error(err))
		return parseExtractionFallback()
	}

	return result
}

// GenerateCircumstancesQuestions asks the model which of the key accident
// facts are missing from the description. Failures are reported in the
// result's Error field, never as a Go error.
func (c *Client) GenerateCircumstancesQuestions(ctx context.Context, accidentDescription string) *entity.CircumstancesResult {
	displayName := providerDisplayName(c.provider.Name())

	if !c.provider.Configured() {
		ctxzap.Warn(ctx, "AI provider has no API key, cannot generate questions",
			zap.String("provider", c.provider.Name()))
		return &entity.CircumstancesResult{
			Questions: []entity.CircumstancesQuestion{},
			Error:     fmt.Sprintf("Nie ustawiono klucza API do modelu %s", displayName),
		}
	}

	raw, err := c.provider.Generate(ctx, circumstancesSystemPrompt, "Opis zdarzenia:\n"+accidentDescription)
	if err != nil {
		ctxzap.Error(ctx, "AI circumstances call failed",
			zap.String("provider", c.provider.Name()), zap.Error(err))
		return &entity.CircumstancesResult{
			Questions: []entity.CircumstancesQuestion{},
			Error:     fmt.Sprintf("Wystąpił nieznany błąd podczas odpytania modelu %s: %s", displayName, err),
		}
	}

	return parseCircumstances(raw)
}

func (c *Client) offlineFallback() *entity.ExtractionResult {
	return &entity.ExtractionResult{
		ExtractedFields: map[string]json.RawMessage{},
		SummaryForUser: fmt.Sprintf("Dziękuję za wiadomość. (Tryb offline - %s API nie skonfigurowane)",
			strings.ToUpper(c.provider.Name())),
		FollowUpQuestions: []string{offlineQuestion},
	}
}

// buildExtractionPrompt assembles the per-turn user message: role framing,
// the mandatory field catalog, the current draft and the new user input.
func buildExtractionPrompt(state *entity.ConversationState, userMessage string, requiredFields []entity.RequiredField) string {
	var b strings.Builder

	b.WriteString("Jesteś asystentem ZUS do zgłaszania wypadków przy pracy dla osób prowadzących działalność gospodarczą.\n\n")
	b.WriteString("DEFINICJA WYPADKU:\n")
	b.WriteString("- Wypadek to nagłe zdarzenie wywołane przyczyną zewnętrzną\n")
	b.WriteString("- Powodujące uraz lub śmierć\n")
	b.WriteString("- Które nastąpiło w związku z pracą\n\n")

	b.WriteString("TWOJE ZADANIE:\n")
	b.WriteString("1. Wyciągnij informacje z wiadomości użytkownika\n")
	b.WriteString("2. Podsumuj co zrozumiałeś\n")
	b.WriteString("3. Zadaj 1-2 pytania uzupełniające o brakujące dane\n\n")

	b.WriteString("WYMAGANE POLA DO ZEBRANIA:\n")
	for _, field := range requiredFields {
		if field.Mandatory {
			b.WriteString("- " + field.Label + " (" + field.Code + ")\n")
		}
	}

	b.WriteString("\nAKTUALNY STAN ZGŁOSZENIA:\n")
	if state != nil && state.Report != nil {
		if encoded, err := json.Marshal(state.Report); err == nil {
			b.Write(encoded)
		} else {
			b.WriteString("Brak danych")
		}
	} else {
		b.WriteString("Brak danych")
	}

	b.WriteString("\n\nWIADOMOŚĆ UŻYTKOWNIKA:\n")
	b.WriteString(userMessage)

	b.WriteString("\n\nODPOWIEDŹ W FORMACIE JSON:\n")
	b.WriteString("{\n")
	b.WriteString("  \"extractedFields\": {},\n")
	b.WriteString("  \"summaryForUser\": \"krótkie podsumowanie co zrozumiałeś\",\n")
	b.WriteString("  \"followUpQuestions\": [\"pytanie 1\", \"pytanie 2\"]\n")
	b.WriteString("}\n")

	return b.String()
}

func providerDisplayName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
