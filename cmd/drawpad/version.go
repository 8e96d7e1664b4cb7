package main

import (
	"flag"
	"fmt"
)

type versionCmd struct{ r *root }

func (v *versionCmd) Program() string { return v.r.program + " version" }

func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }

func (v *versionCmd) Run() error {
	fmt.Printf("%s version %s", v.r.program, version)
	if commit != "" {
		fmt.Printf(" (%s", commit)
		if date != "" {
			fmt.Printf(", %s", date)
		}
		fmt.Print(")")
	}
	fmt.Println()
	return nil
}
