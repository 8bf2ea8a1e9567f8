package main

import "github.com/spatialviz/spatialprep/cmd"

func main() {
	cmd.Execute()
}
