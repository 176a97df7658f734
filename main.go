package main

import "github.com/codewithmirza/datanyx/cmd"

func main() {
	cmd.Execute()
}
