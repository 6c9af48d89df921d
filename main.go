package main

import "github.com/gaurav-prasanna/dailyword/cmd"

func main() {
	cmd.Execute()
}
