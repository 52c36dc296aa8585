package main

import "github.com/jdoppler/shell-utilities/cmd"

func main() {
	cmd.Execute()
}
