// Command selfplay plays batches of headless agent-vs-agent Blokada
// games, shows a live dashboard, and archives every turn to parquet.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"blokada/agent"
	"blokada/logging"
	"blokada/selfplay"
	"blokada/store"
)

var (
	totalGames atomic.Int64
	totalTurns atomic.Int64
	winsA      atomic.Int64
	winsB      atomic.Int64
	draws      atomic.Int64
)

type gameUpdate struct {
	workerID int
	result   selfplay.GameResult
}

type runDone struct{}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

type model struct {
	startTime   time.Time
	recentGames []string
	updates     chan gameUpdate
	done        chan struct{}
	cancel      context.CancelFunc
}

func initialModel(updates chan gameUpdate, done chan struct{}, cancel context.CancelFunc) model {
	return model{
		startTime: time.Now(),
		updates:   updates,
		done:      done,
		cancel:    cancel,
	}
}

func waitForUpdate(updates chan gameUpdate) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func waitForDone(done chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return runDone{}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), waitForDone(m.done), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
	case runDone:
		return m, tea.Quit
	case tickMsg:
		return m, tickCmd()
	case gameUpdate:
		outcome := "draw (turn cap)"
		if !msg.result.Draw {
			outcome = "winner " + msg.result.Winner.String()
		}
		line := fmt.Sprintf("worker %d: %s, %d turns", msg.workerID, outcome, msg.result.Turns)
		m.recentGames = append([]string{line}, m.recentGames...)
		if len(m.recentGames) > 10 {
			m.recentGames = m.recentGames[:10]
		}
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)
	games := totalGames.Load()
	gamesPerSec := 0.0
	if duration.Seconds() >= 1 {
		gamesPerSec = float64(games) / duration.Seconds()
	}

	s := titleStyle.Render("Blokada selfplay") + "\n\n"
	s += fmt.Sprintf("Games:     %d (A %d / B %d / draws %d)\n",
		games, winsA.Load(), winsB.Load(), draws.Load())
	s += fmt.Sprintf("Turns:     %d\n", totalTurns.Load())
	s += fmt.Sprintf("Duration:  %s\n", duration.Round(time.Second))
	s += fmt.Sprintf("Games/sec: %.2f\n\n", gamesPerSec)

	s += "Recent games:\n"
	for _, g := range m.recentGames {
		s += "  " + g + "\n"
	}
	s += "\n" + dimStyle.Render("Press q to quit.") + "\n"
	return s
}

func writerLoop(log *slog.Logger, outDir string, gamesPerFlush int, in <-chan []store.TurnRow) {
	if gamesPerFlush <= 0 {
		gamesPerFlush = 50
	}

	pendingRows := make([]store.TurnRow, 0, 64*gamesPerFlush)
	pendingGames := 0

	flush := func() {
		if pendingGames == 0 {
			return
		}
		outPath, err := store.WriteBatchAtomic(outDir, pendingRows)
		if err != nil {
			log.Error("parquet flush failed", "games", pendingGames, "rows", len(pendingRows), "err", err)
		} else {
			log.Info("parquet flush ok", "path", outPath, "games", pendingGames, "rows", len(pendingRows))
		}
		pendingRows = pendingRows[:0]
		pendingGames = 0
	}

	for rows := range in {
		if len(rows) == 0 {
			continue
		}
		pendingRows = append(pendingRows, rows...)
		pendingGames++
		if pendingGames >= gamesPerFlush {
			flush()
		}
	}
	flush()
}

func main() {
	outDir := flag.String("out-dir", "data/games", "Output directory for parquet batches")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of selfplay workers")
	games := flag.Int64("games", 1, "Stop after this many games (0 = run until interrupted)")
	gamesPerFlush := flag.Int("games-per-flush", 50, "Number of games to buffer per parquet flush")
	turnCap := flag.Int("turn-cap", selfplay.DefaultTurnCap, "Turn cap before a game is declared a technical draw")
	logPath := flag.String("log-file", "selfplay.log", "JSON log file (keeps the dashboard clean)")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := slog.New(logging.NewJSONLineHandler(logFile, slog.LevelInfo))

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	updates := make(chan gameUpdate, *workers)
	writeReqs := make(chan []store.TurnRow, (*workers)*4)

	writerWG := sync.WaitGroup{}
	writerWG.Add(1)
	go func() {
		defer writerWG.Done()
		writerLoop(log, *outDir, *gamesPerFlush, writeReqs)
	}()

	opts := selfplay.Options{TurnCap: *turnCap, Source: "selfplay-heuristic"}
	log.Info("selfplay starting", "workers", *workers, "games", *games, "turn_cap", *turnCap)

	var workerWG sync.WaitGroup
	for i := 0; i < *workers; i++ {
		workerWG.Add(1)
		go func(workerID int) {
			defer workerWG.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				res, rows, err := selfplay.PlayGame(ctx, agent.Heuristic{}, agent.Heuristic{}, opts)
				if err != nil {
					if ctx.Err() == nil {
						log.Error("game aborted", "worker", workerID, "err", err)
					}
					return
				}

				total := totalGames.Add(1)
				totalTurns.Add(int64(res.Turns))
				switch {
				case res.Draw:
					draws.Add(1)
				case res.Winner.String() == "A":
					winsA.Add(1)
				default:
					winsB.Add(1)
				}
				log.Info("game finished",
					"worker", workerID, "game_id", res.GameID,
					"winner", res.Winner.String(), "draw", res.Draw, "turns", res.Turns)

				writeReqs <- rows

				// Never block shutdown on a stalled dashboard.
				select {
				case updates <- gameUpdate{workerID: workerID, result: res}:
				default:
				}

				if *games > 0 && total >= *games {
					cancel()
					return
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		workerWG.Wait()
		close(writeReqs)
		writerWG.Wait()
		close(done)
	}()

	p := tea.NewProgram(initialModel(updates, done, cancel))
	if _, err := p.Run(); err != nil {
		log.Error("dashboard failed", "err", err)
		cancel()
	}

	<-done
	log.Info("selfplay finished",
		"games", totalGames.Load(), "wins_a", winsA.Load(), "wins_b", winsB.Load(), "draws", draws.Load())
	fmt.Printf("done: %d games (A %d / B %d / draws %d)\n",
		totalGames.Load(), winsA.Load(), winsB.Load(), draws.Load())
}
