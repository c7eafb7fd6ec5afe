package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/oneee-playground/schedsim/internal/archive/storage"
	"github.com/oneee-playground/schedsim/internal/sched"
	"google.golang.org/protobuf/types/known/structpb"
)

func main() {
	runIDString := flag.String("runID", "", "run id (lists runs when empty)")
	algorithm := flag.String("alg", string(sched.AlgorithmRoundRobin), "algorithm: FCFS or Round-Robin")
	location := flag.String("loc", "./", "archive location directory")

	flag.Parse()

	storage := storage.NewFSStorage(*location)

	if *runIDString == "" {
		runs, err := storage.ListRuns(context.Background())
		if err != nil {
			log.Fatal("listing runs", err)
		}
		for _, runID := range runs {
			fmt.Println(runID)
		}
		return
	}

	runID, err := uuid.Parse(*runIDString)
	if err != nil {
		log.Fatal("runID is malformed", err)
	}

	alg := sched.Algorithm(*algorithm)

	header, err := storage.FetchHeader(context.Background(), runID, alg)
	if err != nil {
		log.Fatal("fetching header", err)
	}

	b, _ := json.Marshal(header.AsMap())
	fmt.Printf("header: %s\n", b)

	stream, errchan := storage.Stream(context.Background(), runID, alg)

	err = drain(stream, errchan, func(rec *structpb.Struct) {
		b, _ := json.Marshal(rec.AsMap())
		fmt.Printf("outcome: %s\n", b)
	})
	if err != nil {
		log.Fatal(err)
	}
}

// drain passes every streamed record to emit. The producer sends its error
// before closing the stream, so a closed stream still checks errchan once.
func drain(stream <-chan *structpb.Struct, errchan <-chan error, emit func(*structpb.Struct)) error {
	for {
		select {
		case err := <-errchan:
			return err
		case rec, ok := <-stream:
			if !ok {
				select {
				case err := <-errchan:
					return err
				default:
					return nil
				}
			}
			emit(rec)
		}
	}
}
