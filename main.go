package main

import "github.com/jfmyers9/lfm/cmd"

func main() {
	cmd.Execute()
}
