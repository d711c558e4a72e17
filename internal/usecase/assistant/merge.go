package assistant

import (
	"encoding/json"
	"fmt"
	"sort"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/zant/accident-backend/internal/entity"
)

// mergeExtractedFields folds extracted slot values into the draft via RFC 7386
// merge-patch, one slot at a time so a malformed slot never poisons the rest.
// Null and empty leaves are stripped from the patch first: an extraction can
// only ever add or overwrite data, never erase it. Returns the codes of slots
// that could not be applied.
func mergeExtractedFields(report *entity.AccidentReport, fields map[string]json.RawMessage) (*entity.AccidentReport, []string) {
	if len(fields) == 0 {
		return report, nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var rejected []string
	for _, key := range keys {
		merged, err := applySlotPatch(report, key, fields[key])
		if err != nil {
			rejected = append(rejected, key)
			continue
		}
		report = merged
	}

	return report, rejected
}

func applySlotPatch(report *entity.AccidentReport, key string, value json.RawMessage) (*entity.AccidentReport, error) {
	var decoded any
	if err := json.Unmarshal(value, &decoded); err != nil {
		return nil, fmt.Errorf("decode slot %s: %w", key, err)
	}

	sanitized, keep := stripEmpty(decoded)
	if !keep {
		return report, nil
	}

	patchJSON, err := json.Marshal(map[string]any{key: sanitized})
	if err != nil {
		return nil, fmt.Errorf("encode patch for slot %s: %w", key, err)
	}

	currentJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}

	mergedJSON, err := jsonpatch.MergePatch(currentJSON, patchJSON)
	if err != nil {
		return nil, fmt.Errorf("merge slot %s: %w", key, err)
	}

	var merged entity.AccidentReport
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return nil, fmt.Errorf("decode merged draft for slot %s: %w", key, err)
	}

	return &merged, nil
}

// stripEmpty removes values that must not overwrite existing draft data:
// nulls, blank strings, and objects or arrays left empty after stripping.
func stripEmpty(value any) (any, bool) {
	switch typed := value.(type) {
	case nil:
		return nil, false
	case string:
		return typed, typed != ""
	case map[string]any:
		cleaned := make(map[string]any, len(typed))
		for key, nested := range typed {
			if sanitized, keep := stripEmpty(nested); keep {
				cleaned[key] = sanitized
			}
		}
		return cleaned, len(cleaned) > 0
	case []any:
		cleaned := make([]any, 0, len(typed))
		for _, nested := range typed {
			if sanitized, keep := stripEmpty(nested); keep {
				cleaned = append(cleaned, sanitized)
			}
		}
		return cleaned, len(cleaned) > 0
	default:
		return typed, true
	}
}
