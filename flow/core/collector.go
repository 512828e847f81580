package core

// Collector is a pluggable sink that turns drained elements into a result
// container of the caller's choosing. Accept is called once per element in
// drain order; Finish is called once, after the last element.
type Collector[T, R any] interface {
	Accept(T)
	Finish() R
}

// Collect drains s into c and returns c's finished result. If the drain
// fails, Finish is not called and the zero R is returned with the error.
func Collect[T, R any](s *Stream[T], c Collector[T, R]) (result R, err error) {
	var zero R
	st, err := s.use()
	if err != nil {
		return zero, err
	}
	defer release(st, &err)
	for st.HasNext() {
		c.Accept(st.Next())
	}
	if err := st.Err(); err != nil {
		return zero, err
	}
	return c.Finish(), nil
}
