package main

import "github.com/kozaktomas/photo-mapper/cmd"

func main() {
	cmd.Execute()
}
