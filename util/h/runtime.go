package h

func F[T any](result T, err error) T {
	if err != nil {
		panic(err)
	}
	return result
}

func RaiseAny(err error) {
	if err != nil {
		panic(err)
	}
}

func RaiseIf(cond bool, err error) {
	if cond {
		panic(err)
	}
}
