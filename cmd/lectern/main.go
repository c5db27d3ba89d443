package main

import "lectern/internal/cli"

func main() {
	cli.Execute()
}
