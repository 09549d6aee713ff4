package factory

import "runtime"

// ServerEnvironment reports whether the process runs somewhere it can keep
// log files on a local disk. Browser and WASI builds cannot, so the rotating
// file sink is never built there.
func ServerEnvironment() bool {
	return serverGOOS(runtime.GOOS)
}

func serverGOOS(goos string) bool {
	switch goos {
	case "js", "wasip1":
		return false
	default:
		return true
	}
}
