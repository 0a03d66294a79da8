//go:build !debugNmutate
// +build !debugNmutate

package envfill

func debugf(string, ...interface{}) {}
