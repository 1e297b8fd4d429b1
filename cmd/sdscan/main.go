// cmd/sdscan/main.go
package main

import (
	"sdscan/internal/app"
	"sdscan/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
