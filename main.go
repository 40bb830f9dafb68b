package main

import "github.com/showsync/showsync/cmd"

func main() {
	cmd.Execute()
}
