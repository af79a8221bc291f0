package valueobject

// Signal names are fixed per request kind. The BNPL set mirrors the
// behavioral inputs; the installment set mirrors the bureau profile.
const (
	SignalAmount      = "amount"
	SignalTenor       = "tenor"
	SignalOnTime      = "on_time"
	SignalUtilization = "utilization"
	SignalCredit      = "credit"
	SignalDTI         = "dti"
)

// Signal is one scored feature: the normalized input, the sub-score the
// scorer assigned to it, and the qualitative label drawn from that feature's
// fixed vocabulary.
type Signal struct {
	Name       string
	Normalized float64
	SubScore   float64
	Label      string
}

// SignalSet is the ordered, immutable collection of scored signals for one
// request. Order follows the scoring pipeline and is stable across runs.
type SignalSet struct {
	signals []Signal
}

// NewSignalSet copies the given signals into an immutable set.
func NewSignalSet(signals []Signal) SignalSet {
	cp := make([]Signal, len(signals))
	copy(cp, signals)
	return SignalSet{signals: cp}
}

// Signals returns a copy of the scored signals in pipeline order.
func (s SignalSet) Signals() []Signal {
	cp := make([]Signal, len(s.signals))
	copy(cp, s.signals)
	return cp
}

// Labels returns the qualitative label per signal. Keys follow the published
// vocabulary "<name>_signal", except the on_time signal, which surfaces as
// payment_signal.
func (s SignalSet) Labels() map[string]string {
	labels := make(map[string]string, len(s.signals))
	for _, sig := range s.signals {
		labels[labelKey(sig.Name)] = sig.Label
	}
	return labels
}

func labelKey(name string) string {
	if name == SignalOnTime {
		return "payment_signal"
	}
	return name + "_signal"
}

// Components returns the numeric sub-score per signal, keyed "<name>_score".
func (s SignalSet) Components() map[string]float64 {
	components := make(map[string]float64, len(s.signals))
	for _, sig := range s.signals {
		components[sig.Name+"_score"] = sig.SubScore
	}
	return components
}

// Len returns the number of signals in the set.
func (s SignalSet) Len() int { return len(s.signals) }
