// Package contracts decodes logs emitted by the dice game contract.
package contracts

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DiceGameABI is the event subset of the dice game contract ABI.
const DiceGameABI = `[
  {"type":"event","name":"BetPlaced","anonymous":false,"inputs":[
    {"name":"requestId","type":"uint256","indexed":true},
    {"name":"player","type":"address","indexed":true},
    {"name":"betType","type":"uint8","indexed":false},
    {"name":"prediction","type":"uint8","indexed":false},
    {"name":"amount","type":"uint256","indexed":false}]},
  {"type":"event","name":"BetSettled","anonymous":false,"inputs":[
    {"name":"requestId","type":"uint256","indexed":true},
    {"name":"player","type":"address","indexed":true},
    {"name":"die1","type":"uint8","indexed":false},
    {"name":"die2","type":"uint8","indexed":false},
    {"name":"won","type":"bool","indexed":false},
    {"name":"payout","type":"uint256","indexed":false}]}
]`

const (
	EventBetPlaced  = "BetPlaced"
	EventBetSettled = "BetSettled"
)

// ErrMalformedLog is returned for logs that do not decode into a well-formed event.
var ErrMalformedLog = errors.New("malformed log")

// DiceGameBetPlaced represents a BetPlaced event raised by the dice game contract.
type DiceGameBetPlaced struct {
	RequestId  *big.Int
	Player     common.Address
	BetType    uint8
	Prediction uint8
	Amount     *big.Int
	Raw        types.Log
}

// DiceGameBetSettled represents a BetSettled event raised by the dice game contract.
type DiceGameBetSettled struct {
	RequestId *big.Int
	Player    common.Address
	Die1      uint8
	Die2      uint8
	Won       bool
	Payout    *big.Int
	Raw       types.Log
}

// DiceGame decodes dice game logs
type DiceGame struct {
	abi     abi.ABI
	placed  abi.Event
	settled abi.Event
}

// NewDiceGame parses the contract ABI
func NewDiceGame() (*DiceGame, error) {
	parsed, err := abi.JSON(strings.NewReader(DiceGameABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse dice game ABI: %w", err)
	}
	return &DiceGame{
		abi:     parsed,
		placed:  parsed.Events[EventBetPlaced],
		settled: parsed.Events[EventBetSettled],
	}, nil
}

// BetPlacedTopic is the BetPlaced event signature hash
func (d *DiceGame) BetPlacedTopic() common.Hash { return d.placed.ID }

// BetSettledTopic is the BetSettled event signature hash
func (d *DiceGame) BetSettledTopic() common.Hash { return d.settled.ID }

// ParseBetPlaced decodes a BetPlaced log.
func (d *DiceGame) ParseBetPlaced(log types.Log) (*DiceGameBetPlaced, error) {
	event := new(DiceGameBetPlaced)
	if err := d.unpackLog(event, d.placed, log); err != nil {
		return nil, err
	}
	if event.RequestId == nil || event.Amount == nil {
		return nil, fmt.Errorf("%w: missing request id or amount", ErrMalformedLog)
	}
	if event.Player == (common.Address{}) {
		return nil, fmt.Errorf("%w: missing player", ErrMalformedLog)
	}
	event.Raw = log
	return event, nil
}

// ParseBetSettled decodes a BetSettled log. Die faces outside 1..6 are rejected.
func (d *DiceGame) ParseBetSettled(log types.Log) (*DiceGameBetSettled, error) {
	event := new(DiceGameBetSettled)
	if err := d.unpackLog(event, d.settled, log); err != nil {
		return nil, err
	}
	if event.RequestId == nil || event.Payout == nil {
		return nil, fmt.Errorf("%w: missing request id or payout", ErrMalformedLog)
	}
	if event.Player == (common.Address{}) {
		return nil, fmt.Errorf("%w: missing player", ErrMalformedLog)
	}
	if !validDie(event.Die1) || !validDie(event.Die2) {
		return nil, fmt.Errorf("%w: die faces %d/%d out of range", ErrMalformedLog, event.Die1, event.Die2)
	}
	event.Raw = log
	return event, nil
}

func (d *DiceGame) unpackLog(out any, event abi.Event, log types.Log) error {
	if len(log.Topics) == 0 || log.Topics[0] != event.ID {
		return fmt.Errorf("%w: not a %s log", ErrMalformedLog, event.Name)
	}

	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if len(log.Topics)-1 != len(indexed) {
		return fmt.Errorf("%w: %s expects %d indexed fields, got %d",
			ErrMalformedLog, event.Name, len(indexed), len(log.Topics)-1)
	}

	if err := d.abi.UnpackIntoInterface(out, event.Name, log.Data); err != nil {
		return fmt.Errorf("%w: %s data: %v", ErrMalformedLog, event.Name, err)
	}
	if err := abi.ParseTopics(out, indexed, log.Topics[1:]); err != nil {
		return fmt.Errorf("%w: %s topics: %v", ErrMalformedLog, event.Name, err)
	}
	return nil
}

func validDie(v uint8) bool {
	return v >= 1 && v <= 6
}

// PackBetPlaced encodes the event into the topics and data the contract emits.
// Block, transaction and index fields are copied from ev.Raw.
func (d *DiceGame) PackBetPlaced(ev *DiceGameBetPlaced) (types.Log, error) {
	data, err := d.placed.Inputs.NonIndexed().Pack(ev.BetType, ev.Prediction, ev.Amount)
	if err != nil {
		return types.Log{}, fmt.Errorf("failed to pack %s: %w", EventBetPlaced, err)
	}
	return d.withTopics(ev.Raw, d.placed.ID, ev.RequestId, ev.Player, data), nil
}

// PackBetSettled encodes the event into the topics and data the contract emits.
// Block, transaction and index fields are copied from ev.Raw.
func (d *DiceGame) PackBetSettled(ev *DiceGameBetSettled) (types.Log, error) {
	data, err := d.settled.Inputs.NonIndexed().Pack(ev.Die1, ev.Die2, ev.Won, ev.Payout)
	if err != nil {
		return types.Log{}, fmt.Errorf("failed to pack %s: %w", EventBetSettled, err)
	}
	return d.withTopics(ev.Raw, d.settled.ID, ev.RequestId, ev.Player, data), nil
}

func (d *DiceGame) withTopics(raw types.Log, id common.Hash, requestID *big.Int, player common.Address, data []byte) types.Log {
	raw.Topics = []common.Hash{
		id,
		common.BigToHash(requestID),
		common.BytesToHash(player.Bytes()),
	}
	raw.Data = data
	return raw
}
