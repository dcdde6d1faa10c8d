package filter

// And combines two filters with short-circuit conjunction.
func And(a, b Filter) Filter {
	return &andFilter{a, b}
}

// Or combines two filters with short-circuit disjunction.
func Or(a, b Filter) Filter {
	return &orFilter{a, b}
}

// Not inverts a filter.
func Not(f Filter) Filter {
	return &notFilter{f}
}

// Comma evaluates both filters for their side effects and yields the
// verdict of the second one.
func Comma(a, b Filter) Filter {
	return &commaFilter{a, b}
}

type andFilter struct {
	lhs Filter
	rhs Filter
}

func (f *andFilter) Filter(file *File) (bool, error) {
	return f.FilterWithSideEffects(file, nil)
}

func (f *andFilter) FilterWithSideEffects(file *File, effects *SideEffects) (bool, error) {
	ok, err := Apply(f.lhs, file, effects)
	if err != nil || !ok {
		return false, err
	}
	return Apply(f.rhs, file, effects)
}

type orFilter struct {
	lhs Filter
	rhs Filter
}

func (f *orFilter) Filter(file *File) (bool, error) {
	return f.FilterWithSideEffects(file, nil)
}

func (f *orFilter) FilterWithSideEffects(file *File, effects *SideEffects) (bool, error) {
	ok, err := Apply(f.lhs, file, effects)
	if err != nil || ok {
		return ok, err
	}
	return Apply(f.rhs, file, effects)
}

type notFilter struct {
	inner Filter
}

func (f *notFilter) Filter(file *File) (bool, error) {
	return f.FilterWithSideEffects(file, nil)
}

func (f *notFilter) FilterWithSideEffects(file *File, effects *SideEffects) (bool, error) {
	ok, err := Apply(f.inner, file, effects)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

type commaFilter struct {
	car Filter
	cdr Filter
}

func (f *commaFilter) Filter(file *File) (bool, error) {
	return f.FilterWithSideEffects(file, nil)
}

func (f *commaFilter) FilterWithSideEffects(file *File, effects *SideEffects) (bool, error) {
	if _, err := Apply(f.car, file, effects); err != nil {
		return false, err
	}
	return Apply(f.cdr, file, effects)
}
