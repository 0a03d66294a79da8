package statefile

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/muir/nmutate"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

func UnmarshalJSON(data []byte) (nmutate.State, error) {
	var parser fastjson.Parser
	value, err := parser.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "json")
	}
	if value.Type() != fastjson.TypeObject {
		return nil, errors.Wrapf(ErrNotObject, "json top level is a %s", value.Type())
	}
	decoded, err := fromJSON(value, nil)
	if err != nil {
		return nil, err
	}
	return nmutate.State(decoded.(map[string]any)), nil
}

func fromJSON(v *fastjson.Value, pathToHere []string) (any, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeString:
		return string(v.GetStringBytes()), nil
	case fastjson.TypeNumber:
		if i, err := v.Int(); err == nil {
			return i, nil
		}
		if u, err := v.Uint64(); err == nil {
			return u, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, errors.Wrapf(err, "number at %v", pathToHere)
		}
		return f, nil
	case fastjson.TypeArray:
		items := v.GetArray()
		a := make([]any, len(items))
		for i, item := range items {
			d, err := fromJSON(item, pathToHere)
			if err != nil {
				return nil, err
			}
			a[i] = d
		}
		return a, nil
	case fastjson.TypeObject:
		o := v.GetObject()
		m := make(map[string]any, o.Len())
		var walkErr error
		o.Visit(func(key []byte, item *fastjson.Value) {
			if walkErr != nil {
				return
			}
			k := string(key)
			d, err := fromJSON(item, combine(pathToHere, k))
			if err != nil {
				walkErr = err
				return
			}
			m[k] = d
		})
		return m, walkErr
	default:
		return nil, errors.Errorf("unexpected json type %s at %v", v.Type(), pathToHere)
	}
}

// MarshalJSON encodes state with object keys sorted.
func MarshalJSON(state nmutate.State) ([]byte, error) {
	var arena fastjson.Arena
	v, err := toJSON(&arena, reflect.ValueOf(map[string]any(state)), nil)
	if err != nil {
		return nil, err
	}
	return v.MarshalTo(nil), nil
}

func toJSON(a *fastjson.Arena, v reflect.Value, pathToHere []string) (*fastjson.Value, error) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return a.NewNull(), nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Invalid:
		return a.NewNull(), nil
	case reflect.Bool:
		if v.Bool() {
			return a.NewTrue(), nil
		}
		return a.NewFalse(), nil
	case reflect.String:
		return a.NewString(v.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.NewNumberInt(int(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return a.NewNumberString(strconv.FormatUint(v.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return a.NewNumberFloat64(v.Float()), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return a.NewArray(), nil
		}
		arr := a.NewArray()
		for i := 0; i < v.Len(); i++ {
			item, err := toJSON(a, v.Index(i), pathToHere)
			if err != nil {
				return nil, err
			}
			arr.SetArrayItem(i, item)
		}
		return arr, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, errors.Errorf("map at %v has %s keys, not strings", pathToHere, v.Type().Key())
		}
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		o := a.NewObject()
		for _, k := range keys {
			item, err := toJSON(a, v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())), combine(pathToHere, k))
			if err != nil {
				return nil, err
			}
			o.Set(k, item)
		}
		return o, nil
	default:
		return nil, errors.Errorf("cannot encode %s at %v as json", v.Type(), pathToHere)
	}
}

func combine(x []string, y ...string) []string {
	n := make([]string, len(x), len(x)+len(y))
	copy(n, x)
	n = append(n, y...)
	return n
}
