package main

import (
	"flag"
	"os"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"

	"github.com/llj1985/servo/dom"
	"github.com/llj1985/servo/script"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	title := flag.String("title", "events", "document title")
	flag.Parse()

	cfg := dom.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = dom.LoadConfig(*configPath); err != nil {
			logrus.WithError(err).Fatal("loading config")
		}
	}
	log, err := cfg.NewLogger()
	if err != nil {
		logrus.WithError(err).Fatal("configuring logger")
	}
	dispatcher := dom.NewDispatcher(dom.WithLogger(log), dom.WithConfig(cfg))

	doc, err := dom.NewDOMImplementation().CreateHTMLDocument(title)
	if err != nil {
		log.WithError(err).Fatal("building document")
	}
	button, err := doc.CreateElement("button")
	if err != nil {
		log.WithError(err).Fatal("creating button")
	}
	if err := doc.Body().AppendChild(button); err != nil {
		log.WithError(err).Fatal("appending button")
	}

	doc.AddEventListener("click", dom.EventHandler(func(e *dom.Event) {
		log.WithField("phase", e.EventPhase()).Info("document saw click")
	}), dom.AddEventListenerOptions{Capture: true})

	vm := goja.New()
	onclick, err := script.Compile(vm, `(function (e) { e.preventDefault(); })`)
	if err != nil {
		log.WithError(err).Fatal("compiling listener")
	}
	button.AddEventListener("click", onclick, dom.AddEventListenerOptions{})

	click := dom.NewTrustedEvent("click", dom.EventInit{Bubbles: true, Cancelable: true})
	proceed := dispatcher.Dispatch(button, nil, click)
	log.WithFields(logrus.Fields{
		"event":   click.Type(),
		"proceed": proceed,
	}).Info("dispatched")

	if err := dom.Render(os.Stdout, doc); err != nil {
		log.WithError(err).Fatal("rendering document")
	}
	os.Stdout.WriteString("\n")
}
