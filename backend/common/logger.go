package common

import (
	"log"
	"os"
)

var (
	sysLogger = log.New(os.Stdout, "", log.LstdFlags)
	errLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func SysLog(s string) {
	sysLogger.Printf("[SYS] %s", s)
}

func SysError(s string) {
	errLogger.Printf("[ERR] %s", s)
}

func FatalLog(v any) {
	errLogger.Printf("[FATAL] %v", v)
	os.Exit(1)
}
