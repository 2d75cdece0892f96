package mock

import "github.com/fwojciec/sitesearch"

var _ sitesearch.View = (*View)(nil)

// View is a mock implementation of sitesearch.View.
type View struct {
	ShowFn          func(r sitesearch.Region)
	HideFn          func(r sitesearch.Region)
	RenderResultsFn func(entries []sitesearch.ResultEntry)
	FocusInputFn    func()
	UnavailableFn   func(reason string)
}

func (v *View) Show(r sitesearch.Region) {
	v.ShowFn(r)
}

func (v *View) Hide(r sitesearch.Region) {
	v.HideFn(r)
}

func (v *View) RenderResults(entries []sitesearch.ResultEntry) {
	v.RenderResultsFn(entries)
}

func (v *View) FocusInput() {
	v.FocusInputFn()
}

func (v *View) Unavailable(reason string) {
	v.UnavailableFn(reason)
}
