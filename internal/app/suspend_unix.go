//go:build unix

package app

import "syscall"

// stopProcess stops the process until it receives SIGCONT.
func stopProcess() {
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGSTOP)
}
