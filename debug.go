//go:build debugNmutate
// +build debugNmutate

package nmutate

import (
	"log"
)

func debugf(fmt string, args ...interface{}) {
	log.Printf("nmutate: "+fmt, args...)
}
