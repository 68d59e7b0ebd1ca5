package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Select  bool
	Replace bool
	Store   bool
	Server  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Select = boolEnv("DOCJSON_DEBUG_SELECT")
	d.Replace = boolEnv("DOCJSON_DEBUG_REPLACE")
	d.Store = boolEnv("DOCJSON_DEBUG_STORE")
	d.Server = boolEnv("DOCJSON_DEBUG_SERVER")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Select() bool {
	return d.Select
}
func Replace() bool {
	return d.Replace
}
func Store() bool {
	return d.Store
}
func Server() bool {
	return d.Server
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
