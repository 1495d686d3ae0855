package main

import "github.com/yorozuya-cybersecurity/ssh-audit-report/pkg/cli"

func main() {
	cli.Execute()
}
