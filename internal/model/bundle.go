package model

// Result labels. The six method labels come first in canonical order,
// followed by the reserve labels.
const (
	LabelNS = "N/S"
	LabelSP = "S/P"
	LabelM  = "M"
	LabelS  = "S"
	LabelP  = "P"
	LabelK  = "K"

	LabelVmax          = "Vmax"
	LabelVfo           = "V fo"
	LabelVfw           = "v fw"
	LabelRemainingVmax = "Remaining Vmax"
	LabelRemainingVfo  = "Remaining V fo"
	LabelRemainingVfw  = "Remaining v fw"
)

// MethodLabels lists the six decline methods in canonical order.
var MethodLabels = []string{LabelNS, LabelSP, LabelM, LabelS, LabelP, LabelK}

// RecoverableLabels and RemainingLabels group the reserve result labels.
var (
	RecoverableLabels = []string{LabelVmax, LabelVfo, LabelVfw}
	RemainingLabels   = []string{LabelRemainingVmax, LabelRemainingVfo, LabelRemainingVfw}
)

// ResultEntry is one labelled aggregate value. Only finite values are kept.
type ResultEntry struct {
	Label string  `json:"label" yaml:"label" csv:"label"`
	Value float64 `json:"value" yaml:"value" csv:"value"`
}

// Bundle aggregates everything one engine invocation produces. A field is
// nil when its prerequisite data was empty.
type Bundle struct {
	NS       []NSRecord      `json:"ns,omitempty" yaml:"ns,omitempty"`
	SP       []SPRecord      `json:"sp,omitempty" yaml:"sp,omitempty"`
	M        []MRecord       `json:"m,omitempty" yaml:"m,omitempty"`
	S        []SRecord       `json:"s,omitempty" yaml:"s,omitempty"`
	P        []PRecord       `json:"p,omitempty" yaml:"p,omitempty"`
	K        []KRecord       `json:"k,omitempty" yaml:"k,omitempty"`
	Reserves []ReserveRecord `json:"reserves,omitempty" yaml:"reserves,omitempty"`
	Results  []ResultEntry   `json:"results,omitempty" yaml:"results,omitempty"`
}

// IsEmpty reports whether the bundle carries no data at all.
func (b *Bundle) IsEmpty() bool {
	if b == nil {
		return true
	}
	return b.NS == nil && b.SP == nil && b.M == nil && b.S == nil &&
		b.P == nil && b.K == nil && b.Reserves == nil && b.Results == nil
}

// Result looks up a result value by label.
func (b *Bundle) Result(label string) (float64, bool) {
	if b == nil {
		return 0, false
	}
	for _, r := range b.Results {
		if r.Label == label {
			return r.Value, true
		}
	}
	return 0, false
}

// Methods returns the method results present in the bundle, in the order
// of MethodLabels. Reserve entries are left out.
func (b *Bundle) Methods() []ResultEntry {
	var out []ResultEntry
	for _, label := range MethodLabels {
		if v, ok := b.Result(label); ok {
			out = append(out, ResultEntry{Label: label, Value: v})
		}
	}
	return out
}
