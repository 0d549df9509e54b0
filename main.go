package main

import "github.com/Tiliavir/timetags/cmd"

func main() {
	cmd.Execute()
}
