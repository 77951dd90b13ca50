package bot

import (
	"math/rand/v2"
	"sync"
)

type chanceMode int

const (
	chanceOff chanceMode = iota
	chanceAlways
	chanceOneIn
)

// Chance is a 1-in-N gate.
type Chance struct {
	mode chanceMode
	n    uint64
}

// ReplyChance gates phrase replies: n <= 1 always replies, otherwise 1 in n.
func ReplyChance(n int) Chance {
	if n <= 1 {
		return Chance{mode: chanceAlways}
	}
	return Chance{mode: chanceOneIn, n: uint64(n)}
}

// LoveChance gates "and I love you": n <= 0 is off, 1 always, otherwise 1 in n.
func LoveChance(n int) Chance {
	switch {
	case n <= 0:
		return Chance{mode: chanceOff}
	case n == 1:
		return Chance{mode: chanceAlways}
	default:
		return Chance{mode: chanceOneIn, n: uint64(n)}
	}
}

// Roller draws from one random source for both gates. Safe for concurrent use.
type Roller struct {
	mu     sync.Mutex
	src    rand.Source
	reply  Chance
	loveMe Chance
}

// NewRoller uses src, or a PCG source seeded from the runtime when src is nil.
func NewRoller(reply, loveMe Chance, src rand.Source) *Roller {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Roller{src: src, reply: reply, loveMe: loveMe}
}

// ShouldReply rolls the reply gate.
func (r *Roller) ShouldReply() bool {
	return r.roll(r.reply)
}

// ShouldLoveYou rolls the love gate.
func (r *Roller) ShouldLoveYou() bool {
	return r.roll(r.loveMe)
}

func (r *Roller) roll(c Chance) bool {
	switch c.mode {
	case chanceOff:
		return false
	case chanceAlways:
		return true
	}

	r.mu.Lock()
	v := r.src.Uint64()
	r.mu.Unlock()

	return v%c.n == 0
}
