package main

import "github.com/Zoetrophy/pervade/cmd"

func main() {
	cmd.Execute()
}
