package main

import "github.com/KaramelBytes/dsexplore/cmd"

func main() {
	cmd.Execute()
}
