package main

import (
	"github.com/TuanLDT/apidoc-postman/cmd"
)

func main() {
	cmd.Execute()
}
