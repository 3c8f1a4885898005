// Package labels is a container of checkable label chips laid out in a
// wrapping flow, with a cap on how many chips may be checked at once.
package labels

// Label describes one chip. ID identifies the label in the selection; Name is
// what the chip shows.
type Label struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Listener observes selection changes
type Listener interface {
	// OnCheckChanged fires on every accepted check or uncheck.
	OnCheckChanged(label Label, isChecked bool)
	// OnBeyondMaxCheckCount fires on every check rejected by the cap.
	OnBeyondMaxCheckCount()
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	CheckChanged func(label Label, isChecked bool)
	BeyondMax    func()
}

// OnCheckChanged implements Listener
func (f ListenerFuncs) OnCheckChanged(label Label, isChecked bool) {
	if f.CheckChanged != nil {
		f.CheckChanged(label, isChecked)
	}
}

// OnBeyondMaxCheckCount implements Listener
func (f ListenerFuncs) OnBeyondMaxCheckCount() {
	if f.BeyondMax != nil {
		f.BeyondMax()
	}
}
