package main

import "github.com/HaiFongPan/s3-prompt/cmd"

func main() {
	cmd.Execute()
}
