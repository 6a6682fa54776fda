package tests

import (
	"fmt"
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
	"skconsole/ui"
)

type AKey interface{}

func KeyWithAlt(key tea.KeyType) tea.Msg {
	return keyMsg(key, true)
}

func Key(key AKey) tea.Msg {
	return keyMsg(key, false)
}

func keyMsg(key AKey, altKey bool) tea.Msg {
	switch key := key.(type) {
	case rune:
		return tea.KeyMsg{
			Type:  tea.KeyRunes,
			Runes: []rune{key},
			Alt:   altKey,
			Paste: false,
		}
	case int:
		return tea.KeyMsg{
			Type:  tea.KeyRunes,
			Runes: []rune{rune(key)},
			Alt:   altKey,
			Paste: false,
		}
	case tea.KeyType:
		return tea.KeyMsg{
			Type:  key,
			Runes: []rune{},
			Alt:   altKey,
			Paste: false,
		}
	default:
		panic(fmt.Sprintf("Cannot handle %v", key))
	}
}

type Input struct {
	ui.View
}

func (i Input) Enter() {
	cmd := i.View.Update(Key(tea.KeyEnter))
	i.View.Update(cmd())
}

func UpdateKeys(m ui.View, keys string) *Input {
	for _, k := range keys {
		m.Update(Key(k))
	}
	return &Input{
		View: m,
	}
}

type KeyBoard struct {
	view ui.View
}

func (k *KeyBoard) Type(keys string) *KeyBoard {
	UpdateKeys(k.view, keys)
	return k
}

func (k *KeyBoard) Enter() {
	cmd := k.view.Update(Key(tea.KeyEnter))
	if cmd != nil {
		k.view.Update(cmd())
	}
}

func (k *KeyBoard) Submit() []tea.Msg {
	cmd := k.view.Update(Key(tea.KeyEnter))
	// next field
	cmd = k.view.Update(cmd())
	// next group and submit
	cmd = k.view.Update(cmd())
	return ExecuteBatchCmd(cmd)
}

func (k *KeyBoard) Down() *KeyBoard {
	k.view.Update(Key(tea.KeyDown))
	return k
}

func (k *KeyBoard) Up() *KeyBoard {
	k.view.Update(Key(tea.KeyUp))
	return k
}

func (k *KeyBoard) Right() *KeyBoard {
	k.view.Update(Key(tea.KeyRight))
	return k
}

func (k *KeyBoard) Backspace() *KeyBoard {
	k.view.Update(Key(tea.KeyBackspace))
	return k
}

func (k *KeyBoard) F5() *KeyBoard {
	k.view.Update(Key(tea.KeyF5))
	return k
}

func NewKeyboard(view ui.View) *KeyBoard {
	return &KeyBoard{
		view: view,
	}
}

// ExecuteBatchCmd runs cmd and flattens nested batches into their resulting msgs.
func ExecuteBatchCmd(cmd tea.Cmd) []tea.Msg {
	var msgs []tea.Msg
	if cmd == nil {
		return msgs
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			msgs = append(msgs, ExecuteBatchCmd(c)...)
		}
		return msgs
	}
	if isSequence(msg) {
		seq := reflect.ValueOf(msg)
		for i := 0; i < seq.Len(); i++ {
			c, _ := seq.Index(i).Interface().(tea.Cmd)
			msgs = append(msgs, ExecuteBatchCmd(c)...)
		}
		return msgs
	}
	if msg != nil {
		msgs = append(msgs, msg)
	}
	return msgs
}

func isSequence(msg tea.Msg) bool {
	if msg == nil {
		return false
	}
	v := reflect.ValueOf(msg)
	return v.Kind() == reflect.Slice && v.Type().Elem() == reflect.TypeOf(tea.Cmd(nil))
}
