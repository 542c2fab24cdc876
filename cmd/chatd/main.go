// chatd runs a single-node chat server: the binary wire protocol described
// in internal/dispatcher, an append-only journal for crash recovery, and an
// optional relay pump for federating with another chatd.
//
// Configuration is flag/env only, in the style of a hardcoded-port,
// os.Getenv-for-secrets server — there is no config file and no config
// library.
package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/mdp/qrterminal/v3"

	"github.com/asim/chatd/internal/controller"
	"github.com/asim/chatd/internal/dispatcher"
	"github.com/asim/chatd/internal/journal"
	"github.com/asim/chatd/internal/logging"
	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/preview"
	"github.com/asim/chatd/internal/relay"
	"github.com/asim/chatd/internal/timeline"
	"github.com/asim/chatd/internal/uuidgen"
	"github.com/asim/chatd/internal/view"
	"github.com/asim/chatd/internal/wire"
)

func main() {
	addr := flag.String("addr", ":7090", "address to listen for the chatd wire protocol on")
	dataDir := flag.String("data-dir", "data", "directory holding the transaction log and checkpoint db")
	generatorID := flag.Uint("generator-id", 1, "this server's UUID generator id")
	relayURL := flag.String("relay-url", "", "base URL of a relay service to federate with; empty disables relay")
	relayServerID := flag.String("relay-server-id", "", "this server's id on the relay, required if -relay-url is set")
	wsAddr := flag.String("ws-addr", "", "address to serve the WebSocket bridge on; empty disables it")
	flag.Parse()

	log := logging.Default("chatd")

	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	logPath := *dataDir + "/transaction_log.txt"
	writer, err := journal.Open(logPath)
	if err != nil {
		log.Fatalf("open journal: %v", err)
	}
	defer writer.Close()

	checkpointPath := *dataDir + "/checkpoint.db"
	cp, err := journal.OpenCheckpoint(checkpointPath)
	if err != nil {
		log.Printf("checkpoint unavailable, falling back to full replay: %v", err)
		cp = nil
	} else {
		defer cp.Close()
	}

	gen := uuidgen.New(uint32(*generatorID))
	m := loadModel(log, cp, logPath, gen)

	ctrl := controller.New(m, gen, writer)
	if cp != nil {
		ctrl = ctrl.WithCheckpoint(cp)
	}

	v := view.New(m, wire.UUID{Generator: uint32(*generatorID), Sequence: 0})
	tl := timeline.New()

	// The preview fetch runs an un-timeout-bounded HTTP GET. Scheduling it
	// with ScheduleNow keeps it off the task handling the NEW_MESSAGE
	// request, so NewMessage returns and its response is written first; the
	// fetch then runs as its own task on the same single Timeline worker, so
	// other connections and the relay pump still wait while it is in flight.
	fetcher := preview.New(m)
	hook := fetcher.Hook()
	ctrl.OnNewMessage(func(msg *model.Message) {
		tl.ScheduleNow(func() { hook(msg) })
	})

	if *relayURL != "" {
		if *relayServerID == "" {
			log.Fatalf("-relay-server-id is required when -relay-url is set")
		}
		secret := os.Getenv("CHATD_RELAY_SECRET")
		if secret == "" {
			log.Fatalf("CHATD_RELAY_SECRET must be set when -relay-url is set")
		}
		client := relay.NewHTTPClient(*relayURL)
		pump := relay.New(client, ctrl, tl, *relayServerID, secret)
		pump.Start()

		fmt.Printf("relay pairing: server=%s url=%s\n", *relayServerID, *relayURL)
		qrterminal.GenerateHalfBlock(*relayServerID+"@"+*relayURL, qrterminal.L, os.Stdout)
	}

	d := dispatcher.New(ctrl, v, tl)

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("listen on %s: %v", *addr, err)
	}

	if *wsAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			if err := d.ServeWS(w, r); err != nil {
				log.Printf("websocket bridge: %v", err)
			}
		})
		go func() {
			log.Printf("websocket bridge listening on %s", *wsAddr)
			if err := http.ListenAndServe(*wsAddr, mux); err != nil {
				log.Printf("websocket bridge stopped: %v", err)
			}
		}()
	}

	go tl.Run()

	log.Printf("listening on %s", *addr)
	if err := d.Serve(ln); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

// loadModel restores the Model either from a checkpoint snapshot plus the
// journal tail written after it, or by replaying the entire journal from
// scratch when no checkpoint exists, it fails to load, or the tail replay
// fails.
func loadModel(log *logging.Logger, cp *journal.Checkpoint, logPath string, gen *uuidgen.Gen) *model.Model {
	if cp != nil {
		if offset, seq, snapshot, ok := cp.Load(); ok {
			s, err := model.UnmarshalSnapshot(snapshot)
			if err == nil {
				m := model.Import(s)
				gen.Advance(seq)
				app := controller.New(m, gen, nil)
				err := journal.ReplaySince(logPath, offset, app)
				if err == nil {
					return m
				}
				log.Printf("replay tail after checkpoint failed, falling back to full replay: %v", err)
			} else {
				log.Printf("checkpoint snapshot corrupt, falling back to full replay: %v", err)
			}
		}
	}

	m := model.New()
	app := controller.New(m, gen, nil)
	if err := journal.Replay(logPath, app); err != nil {
		log.Fatalf("replay journal: %v", err)
	}
	return m
}
