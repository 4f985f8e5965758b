package util

import (
	"crypto/md5"

	"lukechampine.com/uint128"
)

// Mathmatically correct modulo function (% as done in Python, Haskell, Ruby, etc.)
//
// modulo(-1, 5) = 4
//
// modulo(3, -5) = -2
func Modulo(x, n int) int {
	return (x%n + n) % n
}

func MD5HashUint128(val string) uint128.Uint128 {
	b := md5.Sum([]byte(val))
	return uint128.FromBytesBE(b[:])
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
