package submit

import (
	"bytes"
	"encoding/json"
)

// Field — пара имя/значение одного элемента формы в порядке документа.
type Field struct {
	Name  string
	Value string
}

// FormPayload — сериализуемое содержимое формы на момент отправки.
// Ключи уникальны: при повторе имени побеждает последнее значение,
// а позиция ключа остаётся на месте первого вхождения.
type FormPayload struct {
	keys   []string
	values map[string]string
}

// NewPayload собирает FormPayload из полей формы.
func NewPayload(fields []Field) FormPayload {
	p := FormPayload{values: make(map[string]string, len(fields))}
	for _, f := range fields {
		p.Set(f.Name, f.Value)
	}
	return p
}

// Set добавляет или перезаписывает значение.
func (p *FormPayload) Set(name, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = value
}

// Get возвращает значение поля.
func (p FormPayload) Get(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Len — количество уникальных полей.
func (p FormPayload) Len() int { return len(p.keys) }

// Keys — имена полей в порядке первого появления.
func (p FormPayload) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Map — копия в виде обычной map.
func (p FormPayload) Map() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Filter оставляет только разрешённые поля. Пустой список — без фильтрации.
func (p FormPayload) Filter(allow []string) FormPayload {
	if len(allow) == 0 {
		return p
	}
	allowed := make(map[string]struct{}, len(allow))
	for _, name := range allow {
		allowed[name] = struct{}{}
	}
	out := FormPayload{values: make(map[string]string, len(allow))}
	for _, k := range p.keys {
		if _, ok := allowed[k]; ok {
			out.Set(k, p.values[k])
		}
	}
	return out
}

// MarshalJSON пишет JSON-объект с ключами в порядке документа.
func (p FormPayload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
