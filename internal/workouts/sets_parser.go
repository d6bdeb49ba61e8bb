package workouts

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// setPayload is the JSON shape of a single submitted set. Weight and
// repetitions arrive either as numbers or as numeric strings, depending
// on the client.
type setPayload struct {
	Kilos     json.RawMessage `json:"peso"`
	Reps      json.RawMessage `json:"repeticiones"`
	Completed *bool           `json:"completada"`
}

// ParseSetsData turns the submitted list of per-set JSON payloads into
// sets ready for storage. A payload that fails to parse is skipped, not
// an error: the client sends whatever the form rows held and a broken row
// must not sink the whole workout. Each set keeps the 1-based position of
// its payload as the set number, so skipped payloads leave gaps in the
// numbering. Returns the parsed sets and the number of skipped payloads.
func ParseSetsData(setsData []string) ([]Set, int) {
	var sets []Set
	skipped := 0
	for i, payloadJson := range setsData {
		if payloadJson == "" {
			continue
		}

		set, err := parseSetPayload(payloadJson)
		if err != nil {
			// deliberate leniency, flagged for visibility
			log.Warnf("skipping set payload %d [%s]: %s", i+1, payloadJson, err)
			skipped++
			continue
		}

		set.SetNumber = i + 1
		sets = append(sets, set)
	}
	return sets, skipped
}

func parseSetPayload(payloadJson string) (Set, error) {
	var payload setPayload
	if err := json.Unmarshal([]byte(payloadJson), &payload); err != nil {
		return Set{}, err
	}
	// a JSON null unmarshals into a number without error, treat it as absent
	if payload.Kilos == nil || string(payload.Kilos) == "null" {
		return Set{}, errors.New("missing peso")
	}
	if payload.Reps == nil || string(payload.Reps) == "null" {
		return Set{}, errors.New("missing repeticiones")
	}

	kilos, err := parseKilos(payload.Kilos)
	if err != nil {
		return Set{}, err
	}
	reps, err := parseReps(payload.Reps)
	if err != nil {
		return Set{}, err
	}

	completed := true
	if payload.Completed != nil {
		completed = *payload.Completed
	}

	return Set{
		Kilos:     kilos,
		Reps:      reps,
		Completed: completed,
	}, nil
}

// parseKilos accepts a JSON number, a string holding one, or a bool
// coerced to 1/0.
func parseKilos(raw json.RawMessage) (float64, error) {
	var kilos float64
	if err := json.Unmarshal(raw, &kilos); err == nil {
		return kilos, nil
	}
	var kilosBool bool
	if err := json.Unmarshal(raw, &kilosBool); err == nil {
		if kilosBool {
			return 1, nil
		}
		return 0, nil
	}
	var kilosStr string
	if err := json.Unmarshal(raw, &kilosStr); err != nil {
		return 0, errors.New("peso is not numeric")
	}
	return strconv.ParseFloat(strings.TrimSpace(kilosStr), 64)
}

// parseReps accepts a JSON number, truncated toward zero, a string that
// must hold a plain integer, or a bool coerced to 1/0.
func parseReps(raw json.RawMessage) (int, error) {
	var reps float64
	if err := json.Unmarshal(raw, &reps); err == nil {
		return int(reps), nil
	}
	var repsBool bool
	if err := json.Unmarshal(raw, &repsBool); err == nil {
		if repsBool {
			return 1, nil
		}
		return 0, nil
	}
	var repsStr string
	if err := json.Unmarshal(raw, &repsStr); err != nil {
		return 0, errors.New("repeticiones is not numeric")
	}
	return strconv.Atoi(strings.TrimSpace(repsStr))
}
