package main

import "github.com/NikolaiKhriapov/full-stack-app/cmd"

func main() {
	cmd.Execute()
}
