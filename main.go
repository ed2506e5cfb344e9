package main

import "github.com/bekucukakin/vega/cmd"

func main() {
	cmd.Execute()
}
