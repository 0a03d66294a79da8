//go:build !debugNmutate
// +build !debugNmutate

package nmutate

func debugf(string, ...interface{}) {}
