package main

import "fitpost/internal/cmd"

func main() {
	cmd.Execute()
}
