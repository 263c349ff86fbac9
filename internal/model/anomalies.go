package model

// Anomalies reports data-quality problems found while building a result.
// None of them stop a computation.
type Anomalies struct {
	MissingAccountRefs int      `json:"missingAccountRefs"`
	UnbalancedEntries  []string `json:"unbalancedEntries,omitempty"`
	UndatedEntries     []string `json:"undatedEntries,omitempty"`
}

// Merge adds o into a.
func (a *Anomalies) Merge(o Anomalies) {
	a.MissingAccountRefs += o.MissingAccountRefs
	a.UnbalancedEntries = append(a.UnbalancedEntries, o.UnbalancedEntries...)
	a.UndatedEntries = append(a.UndatedEntries, o.UndatedEntries...)
}

// Empty reports whether nothing was flagged.
func (a Anomalies) Empty() bool {
	return a.MissingAccountRefs == 0 && len(a.UnbalancedEntries) == 0 && len(a.UndatedEntries) == 0
}
