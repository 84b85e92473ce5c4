package main

import "github.com/arcana-cards/arcana/cmd"

func main() {
	cmd.Execute()
}
