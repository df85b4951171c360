package nurbsfit

// binomial returns n choose k as a float. It keeps no cache, so concurrent
// evaluation of shared curves stays race free.
func binomial(n, k int) float64 {
	if k == 0 {
		return 1
	}

	if n == 0 || k > n {
		return 0
	}

	if k > n-k {
		k = n - k
	}

	r := 1.0
	for d := 1; d <= k; d++ {
		r *= float64(n) / float64(d)
		n--
	}

	return r
}
