package lid

import (
	"testing"
)

func FuzzNewAlphabet(f *testing.F) {
	f.Add("01")
	f.Add("0123456789abcdef")
	f.Add("ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890")
	f.Add("")
	f.Add("A")
	f.Add("AA")
	f.Add("AB C")
	f.Add("施氏食狮史")

	f.Fuzz(func(t *testing.T, symbols string) {
		a, err := NewAlphabet(symbols)
		if err != nil {
			// 非法符号串必须报错而非 panic
			return
		}

		if a.Base() != len(symbols) {
			t.Fatalf("base %d, want %d", a.Base(), len(symbols))
		}
		for i := 0; i < len(symbols); i++ {
			if a.digit(symbols[i]) != i {
				t.Fatalf("digit(%q) = %d, want %d", symbols[i], a.digit(symbols[i]), i)
			}
		}

		// 合法符号表必须能支撑生成，输出闭合于表内
		g, err := NewGenerator(
			WithAlphabet(a),
			WithPrefixLength(4),
			WithSequenceLength(3),
			WithIncrementRange(1, 7),
		)
		if err != nil {
			t.Fatalf("NewGenerator with valid alphabet: %v", err)
		}
		id, err := g.Generate()
		if err != nil {
			t.Fatal(err)
		}
		if len(id) != 7 {
			t.Fatalf("id length %d, want 7", len(id))
		}
		for i := 0; i < len(id); i++ {
			if !a.Contains(id[i]) {
				t.Fatalf("byte %q escaped the alphabet", id[i])
			}
		}
	})
}

func FuzzNewGenerator(f *testing.F) {
	f.Add(16, 12, uint64(100), uint64(1000))
	f.Add(0, 0, uint64(0), uint64(0))
	f.Add(-1, -1, uint64(1), uint64(2))
	f.Add(1, 40, uint64(1), uint64(2))             // 36^40 溢出
	f.Add(2, 12, uint64(1<<63), uint64(1<<63+100)) // 大步长
	f.Add(64, 1, uint64(1), uint64(36))

	f.Fuzz(func(t *testing.T, p, s int, minInc, maxInc uint64) {
		// 构造器对长度没有上界约束，限制 fuzz 规模避免无意义的大分配
		if p > 1<<12 || s > 1<<12 {
			t.Skip()
		}
		g, err := NewGenerator(
			WithPrefixLength(p),
			WithSequenceLength(s),
			WithIncrementRange(minInc, maxInc),
		)
		if err != nil {
			// 非法配置必须报错而非 panic
			return
		}

		id, err := g.Generate()
		if err != nil {
			t.Fatal(err)
		}
		if len(id) != p+s {
			t.Fatalf("id length %d, want %d", len(id), p+s)
		}
	})
}

func FuzzDecodeSequence(f *testing.F) {
	f.Add("AAAA")
	f.Add("G9")
	f.Add("")
	f.Add("~~~")
	f.Add("ZZZZZZZZZZZZZZZZZZZZ")

	f.Fuzz(func(t *testing.T, s string) {
		v, err := DecodeSequence(s, Base36)
		if err != nil {
			return
		}
		// 解码成功则每个字节都应属于符号表，且值在 36^len 以内
		for i := 0; i < len(s); i++ {
			if !Base36.Contains(s[i]) {
				t.Fatalf("decode accepted foreign byte %q", s[i])
			}
		}
		if len(s) < 12 {
			limit, err := pow(36, len(s))
			if err != nil {
				t.Fatal(err)
			}
			if v >= limit {
				t.Fatalf("decoded %d outside [0, 36^%d)", v, len(s))
			}
		}
	})
}
