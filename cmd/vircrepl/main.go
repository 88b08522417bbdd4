// Command vircrepl is a line-oriented IRC client for poking at servers: it
// prints every event and takes /-commands from stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/virc-go/virc"
)

var flagConfig = flag.String("config", "", "Path to a YAML config file")
var flagServer = flag.String("server", "", "Server URL (irc:// or ircs://), overrides the config file")
var flagNick = flag.String("nick", "", "Nickname, overrides the config file")
var flagSkipVerify = flag.Bool("skip-verify", false, "Skip TLS certificate verification")

func main() {
	flag.Parse()

	config, err := loadConfig(*flagConfig)
	if err != nil {
		log.Fatalf("%s", err)
	}
	if *flagServer != "" {
		config.Server = *flagServer
	}
	if *flagNick != "" {
		config.Client.Nick = *flagNick
	}
	if *flagSkipVerify {
		config.Client.SkipTLSVerification = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := virc.New(config.Client)
	client.AddHandler(printEvent)

	connectCtx, connectCancel := context.WithTimeout(ctx, 30*time.Second)
	err = client.Connect(connectCtx, config.Server)
	connectCancel()
	if err != nil {
		log.Fatalf("Failed to connect: %s", err)
	}

	go func() {
		exitSignal := make(chan os.Signal, 1)
		signal.Notify(exitSignal, os.Interrupt, syscall.SIGTERM)
		<-exitSignal

		quitCtx, quitCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = client.Quit(quitCtx, config.QuitReason)
		quitCancel()
		os.Exit(0)
	}()

	reader := bufio.NewReader(os.Stdin)
	var target string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "/") {
			if target == "" {
				log.Println("No target; use /target <name> first")
				continue
			}
			if err := client.SendMessage(ctx, target, line, virc.MessageStandard); err != nil {
				log.Println("Send failed:", err)
			}
			continue
		}

		command, rest, _ := strings.Cut(line[1:], " ")
		switch strings.ToLower(command) {
		case "target":
			target = rest
			log.Println("Target set to", target)

		case "join":
			name, key, _ := strings.Cut(rest, " ")
			if _, err := client.Join(ctx, name, key); err != nil {
				log.Println("Join failed:", err)
				continue
			}
			target = name

		case "part":
			name, reason, _ := strings.Cut(rest, " ")
			channel := client.Channel(name)
			if channel == nil {
				log.Println("No such channel:", name)
				continue
			}
			if err := client.Part(ctx, channel, reason); err != nil {
				log.Println("Part failed:", err)
			}

		case "nick":
			result, err := client.ChangeNick(ctx, rest)
			if err != nil {
				log.Println("Nick change failed:", err)
				continue
			}
			log.Println("Nick change:", result)

		case "away":
			away, err := client.SetAway(ctx, rest)
			if err != nil {
				log.Println("Away failed:", err)
				continue
			}
			log.Println("Away:", away)

		case "me":
			if target == "" {
				log.Println("No target; use /target <name> first")
				continue
			}
			if err := client.SendMessage(ctx, target, rest, virc.MessageAction); err != nil {
				log.Println("Send failed:", err)
			}

		case "notice":
			name, text, _ := strings.Cut(rest, " ")
			if err := client.SendMessage(ctx, name, text, virc.MessageNotice); err != nil {
				log.Println("Send failed:", err)
			}

		case "raw":
			if err := client.Send(rest); err != nil {
				log.Println("Send failed:", err)
			}

		case "quit":
			quitCtx, quitCancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = client.Quit(quitCtx, config.QuitReason)
			quitCancel()
			return

		default:
			log.Println("Unknown command:", command)
		}
	}
}

func printEvent(event *virc.Event, client *virc.Client) {
	switch event.Name() {
	case "channel.message":
		fmt.Printf("[%s] <%s> %s\n", event.Arg(0), event.Nick, event.Text)
	case "user.message":
		fmt.Printf("[%s] <%s> %s\n", event.Nick, event.Nick, event.Text)
	case "client.disconnected":
		log.Println("Disconnected from server")
		os.Exit(0)
	default:
		if event.Kind() != "packet" {
			log.Printf("%s %v %q", event.Name(), event.Args, event.Text)
		}
	}
}
