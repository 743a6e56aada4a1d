package main

import "github.com/deploymenttheory/go-lpmetadata/cmd"

func main() {
	cmd.Execute()
}
