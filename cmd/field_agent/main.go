package main

import "github.com/SscSPs/solar_backoffice/cmd/field_agent/cmd"

func main() {
	cmd.Execute()
}
