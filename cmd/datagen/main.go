/* Copyright 2018 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command datagen generates records from a data spec.
//
//	datagen -spec people.yaml -i 10 -format csv
//	datagen -inline '{"id:uuid": {}, "n:rand_int_range": [1, 10]}' -i 3
//	datagen -type-help csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/generator"
	"github.com/Comcast/datagen/loader"
	"github.com/Comcast/datagen/registry"
	"github.com/Comcast/datagen/sinks"
	"github.com/Comcast/datagen/tools"
	"github.com/Comcast/datagen/types"
	"github.com/Comcast/datagen/util"

	"github.com/google/uuid"
)

// stringsFlag is a repeatable flag.
type stringsFlag []string

func (f *stringsFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *stringsFlag) Set(s string) error {
	*f = append(*f, s)
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("datagen", flag.ContinueOnError)

	var (
		specFilename = fs.String("spec", "", "spec filename (JSON or YAML)")
		inline       = fs.String("inline", "", "spec text (instead of -spec)")
		iterations   = fs.Int("i", 100, "number of records (-1 means forever)")
		format       = fs.String("format", sinks.JSONFormat, "output format: json, json-pretty, yaml or csv")
		varsFile     = fs.String("vars-file", "", "JSON or YAML file of template variables")
		dataDir      = fs.String("data-dir", "", "directory for relative CSV datafiles")
		strict       = fs.Bool("strict", false, "validate every field spec against its schema")

		boltFile   = fs.String("bolt", "", "also store records in this BoltDB file")
		boltBucket = fs.String("bolt-bucket", sinks.DefaultBoltBucket, "BoltDB bucket")
		sqlDriver  = fs.String("sql-driver", "sqlite", "database/sql driver for -sql: "+strings.Join(sinks.SQLDrivers(), ", "))
		sqlDSN     = fs.String("sql", "", "also store records in the database with this DSN")
		sqlTable   = fs.String("sql-table", sinks.DefaultSQLTable, "table for -sql")
		wsURL      = fs.String("ws", "", "also send records to this WebSocket URL")
		broker     = fs.String("mqtt", "", "also publish records to this MQTT broker (tcp://host:port)")
		topic      = fs.String("mqtt-topic", "datagen", "MQTT topic, optionally TOPIC:QOS")

		typeHelp  = fs.String("type-help", "", "print the usage of a type and exit")
		listTypes = fs.Bool("list-types", false, "list the known types and exit")
		html      = fs.Bool("html", false, "write an HTML page describing the spec (or every type) and exit")
		dot       = fs.Bool("dot", false, "write a Graphviz graph of the spec's dependencies and exit")
		mermaid   = fs.Bool("mermaid", false, "write a Mermaid graph of the spec's dependencies and exit")
		verbose   = fs.Bool("v", false, "verbose logging")

		vars     stringsFlag
		defaults stringsFlag
	)
	fs.Var(&vars, "var", "template variable name=value (repeatable)")
	fs.Var(&defaults, "set-default", "registry default name=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	util.Logging = *verbose

	r := types.Standard()
	ds, err := tools.ParseVars(defaults)
	if err != nil {
		return err
	}
	for name, x := range ds {
		if _, err := r.Default(name); err != nil {
			util.Warnf("setting unknown default %s", name)
		}
		r.SetDefault(name, x)
	}

	switch {
	case *listTypes:
		for _, name := range r.Names(registry.Types) {
			fmt.Fprintln(out, name)
		}
		return nil
	case *typeHelp != "":
		u, err := tools.Usage(r, *typeHelp)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, u)
		return nil
	case *html && *specFilename == "" && *inline == "":
		return tools.RenderPage(r, nil, "datagen types", out, nil)
	}

	spec, err := readSpec(*specFilename, *inline, *varsFile, vars)
	if err != nil {
		return err
	}

	var opts []loader.Option
	if *dataDir != "" {
		opts = append(opts, loader.WithDataDir(*dataDir))
	}
	if *strict {
		opts = append(opts, loader.WithStrict(true))
	}
	l, err := loader.New(spec, r, opts...)
	if err != nil {
		return err
	}

	if *html || *dot || *mermaid {
		a, err := tools.Analyze(l.Spec(), func(typ string) bool {
			_, have := r.Constructor(typ)
			return have
		})
		if err != nil {
			return err
		}
		switch {
		case *dot:
			return tools.Dot(a, out)
		case *mermaid:
			return tools.Mermaid(a, out, nil)
		default:
			return tools.RenderPage(r, a, title(*specFilename), out, nil)
		}
	}

	if err := l.Compile(); err != nil {
		return err
	}

	f, err := sinks.Formatter(r, *format)
	if err != nil {
		return err
	}
	tee := sinks.Tee{sinks.NewWriter(out, f)}

	if *boltFile != "" {
		b, err := sinks.OpenBolt(*boltFile, *boltBucket)
		if err != nil {
			return err
		}
		defer b.Close()
		tee = append(tee, b)
	}
	if *sqlDSN != "" {
		db, err := sinks.OpenSQL(ctx, *sqlDriver, *sqlDSN, *sqlTable)
		if err != nil {
			return err
		}
		defer db.Close()
		tee = append(tee, db)
	}
	if *wsURL != "" {
		ws, err := sinks.DialWebSocket(ctx, *wsURL, f)
		if err != nil {
			return err
		}
		defer ws.Close()
		tee = append(tee, ws)
	}
	if *broker != "" {
		m, err := newMQTT(r, *broker, *topic, f)
		if err != nil {
			return err
		}
		if err := m.Connect(ctx); err != nil {
			return err
		}
		defer m.Close()
		tee = append(tee, m)
	}

	g, err := generator.ForLoader(l, generator.WithRecordSink(tee))
	if err != nil {
		return err
	}
	n, err := g.Run(ctx, *iterations)
	util.Logf("wrote %d records", n)
	return err
}

// readSpec reads the spec from the file or the inline text after
// rendering the template variables, which come from the vars file and
// then the command line.
func readSpec(filename, inline, varsFile string, args []string) (*core.Spec, error) {
	vars := map[string]interface{}{}
	if varsFile != "" {
		m, err := tools.LoadVars(varsFile)
		if err != nil {
			return nil, err
		}
		vars = m
	}
	m, err := tools.ParseVars(args)
	if err != nil {
		return nil, err
	}
	for k, v := range m {
		vars[k] = v
	}

	switch {
	case inline != "" && filename != "":
		return nil, fmt.Errorf("give -spec or -inline, not both")
	case inline != "":
		return tools.ParseSpec([]byte(inline), ".", vars)
	case filename != "":
		return tools.ReadSpec(filename, vars)
	default:
		return nil, fmt.Errorf("need -spec or -inline")
	}
}

func newMQTT(r *registry.Registry, broker, topic string, f core.Formatter) (*sinks.MQTT, error) {
	var qos byte
	if x, err := r.Default(sinks.MQTTQoSDefault); err == nil {
		n, ok := core.AsInt(x)
		if !ok || n < 0 || 2 < n {
			return nil, core.Configf("%s %v isn't 0, 1 or 2", sinks.MQTTQoSDefault, x)
		}
		qos = byte(n)
	}
	return sinks.NewMQTT(sinks.MQTTOptions{
		Broker:   broker,
		ClientID: "datagen-" + uuid.NewString(),
		Topic:    topic,
		QoS:      qos,
		Quiesce:  250,
	}, f), nil
}

func title(filename string) string {
	if filename == "" {
		return "datagen spec"
	}
	return filename
}
