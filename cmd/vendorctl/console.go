package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// 输入这些指令时不作为字段值处理
const (
	cmdBack = ":back"
	cmdQuit = ":quit"
)

// console 行式交互输入输出
type console struct {
	in  *bufio.Reader
	out io.Writer
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{in: bufio.NewReader(in), out: out}
}

func (c *console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// ask 读取一行；current 非空时作为默认值，直接回车保留
func (c *console) ask(label, current string) (string, error) {
	if current != "" {
		c.printf("%s [%s]: ", label, current)
	} else {
		c.printf("%s: ", label)
	}

	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return current, nil
	}
	return line, nil
}

// consoleNotifier 把通知打印到终端
type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Success(message string) {
	fmt.Fprintf(n.out, "✔ %s\n", message)
}

func (n consoleNotifier) Error(message string) {
	fmt.Fprintf(n.out, "✘ %s\n", message)
}
