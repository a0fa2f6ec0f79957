package main

import "beblang/cmd"

func main() {
	cmd.Execute()
}
