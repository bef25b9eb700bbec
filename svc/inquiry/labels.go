package inquiry

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed labels.yaml
var labelsYAML []byte

type labelEntry struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

type labelTable struct {
	codes  []string
	labels map[string]string
}

func newLabelTable(entries []labelEntry) (labelTable, error) {
	t := labelTable{
		codes:  make([]string, 0, len(entries)),
		labels: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if e.Code == "" || e.Label == "" {
			return labelTable{}, fmt.Errorf("label entry %+v is incomplete", e)
		}
		if _, dup := t.labels[e.Code]; dup {
			return labelTable{}, fmt.Errorf("duplicate label code %q", e.Code)
		}
		t.codes = append(t.codes, e.Code)
		t.labels[e.Code] = e.Label
	}
	return t, nil
}

// resolve returns the label for code, or code itself when unknown.
func (t labelTable) resolve(code string) string {
	if label, ok := t.labels[code]; ok {
		return label
	}
	return code
}

// Read-only after init.
var prefectures, conditions = mustLoadLabels(labelsYAML)

func mustLoadLabels(data []byte) (labelTable, labelTable) {
	var doc struct {
		Prefectures []labelEntry `yaml:"prefectures"`
		Conditions  []labelEntry `yaml:"conditions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		panic(fmt.Sprintf("inquiry: invalid labels.yaml: %v", err))
	}
	p, err := newLabelTable(doc.Prefectures)
	if err != nil {
		panic(fmt.Sprintf("inquiry: prefectures: %v", err))
	}
	c, err := newLabelTable(doc.Conditions)
	if err != nil {
		panic(fmt.Sprintf("inquiry: conditions: %v", err))
	}
	return p, c
}

// PrefectureLabel resolves a prefecture code ("tokyo") to its display label
// ("東京都"). Unknown codes are returned unchanged.
func PrefectureLabel(code string) string {
	return prefectures.resolve(code)
}

// ConditionLabel resolves a product condition code ("good") to its display
// label ("美品"). Unknown codes are returned unchanged.
func ConditionLabel(code string) string {
	return conditions.resolve(code)
}

// PrefectureCodes returns the known prefecture codes in form order.
func PrefectureCodes() []string {
	return append([]string(nil), prefectures.codes...)
}

// ConditionCodes returns the known product condition codes in form order.
func ConditionCodes() []string {
	return append([]string(nil), conditions.codes...)
}
