//go:build !unix

package app

func stopProcess() {}
