package bric

import "fmt"

// Update returns a new Bric with the value at the given path components
// replaced by value, rebuilding every ancestor along the way (Bric is
// immutable, so structural update never mutates the receiver or its
// descendants in place).
func Update(root Bric, value Bric, path ...string) (Bric, error) {
	if len(path) == 0 {
		return value, nil
	}

	key := path[0]
	rest := path[1:]

	switch root.kind {
	case KindObj:
		m := root.o
		if m == nil {
			m = NewObj()
		}
		child, _ := m.Get(key)
		updated, err := Update(child, value, rest...)
		if err != nil {
			return Bric{}, err
		}
		out := NewObj()
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
		out.Set(key, updated)
		return ObjOf(out), nil
	case KindArr, KindNull:
		// Null is treated as an implicit empty object so that Update can be
		// used to build up a value from scratch one path at a time.
		out := NewObj()
		if root.kind == KindArr {
			return Bric{}, fmt.Errorf("bric: cannot update array by key %q", key)
		}
		updated, err := Update(Null(), value, rest...)
		if err != nil {
			return Bric{}, err
		}
		out.Set(key, updated)
		return ObjOf(out), nil
	default:
		return Bric{}, fmt.Errorf("bric: cannot descend into %s at key %q", root.kind, key)
	}
}

// Alter rewrites every node of the tree rooted at root by applying f,
// bottom-up, passing each node's path. Returning the input Bric unchanged
// from f leaves that node untouched.
func Alter(root Bric, f func(path []string, v Bric) Bric) Bric {
	return alter(root, nil, f)
}

func alter(v Bric, path []string, f func([]string, Bric) Bric) Bric {
	switch v.kind {
	case KindArr:
		out := make([]Bric, len(v.a))
		for i, elem := range v.a {
			out[i] = alter(elem, append(append([]string{}, path...), fmt.Sprint(i)), f)
		}
		return f(path, Arr(out...))
	case KindObj:
		if v.o == nil {
			return f(path, v)
		}
		out := NewObj()
		for pair := v.o.Oldest(); pair != nil; pair = pair.Next() {
			childPath := append(append([]string{}, path...), pair.Key)
			out.Set(pair.Key, alter(pair.Value, childPath, f))
		}
		return f(path, ObjOf(out))
	default:
		return f(path, v)
	}
}
