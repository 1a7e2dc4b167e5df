package serializedfile

import (
	"github.com/saferwall/unityasset/metadata"
	"github.com/saferwall/unityasset/reader"
	"github.com/saferwall/unityasset/typetree"
)

// readSerializedType reads one SerializedType record, per spec §3/§4.4.
// enableTypeTree controls whether a TypeTree blob follows; script_id and
// old_type_hash appear only for the ranges Unity actually wrote them.
func readSerializedType(r *reader.Reader, formatVersion int32, enableTypeTree bool, isRefType bool) (metadata.SerializedType, error) {
	var st metadata.SerializedType

	classID, err := r.ReadI32()
	if err != nil {
		return st, err
	}
	st.ClassID = classID

	if formatVersion >= 16 {
		stripped, err := r.ReadBool()
		if err != nil {
			return st, err
		}
		st.IsStripped = stripped
	}

	st.ScriptTypeIndex = -1
	if formatVersion >= 17 {
		idx, err := r.ReadI16()
		if err != nil {
			return st, err
		}
		st.ScriptTypeIndex = idx
	}

	if formatVersion >= 13 {
		isStrippedType := st.ClassID == 114 // MonoBehaviour
		if formatVersion < 16 {
			isStrippedType = isStrippedType || classID < 0
		}
		if isStrippedType || isRefType {
			if _, err := r.ReadBytes(16); err != nil { // script_id
				return st, err
			}
			st.ScriptID = [16]byte{}
		}
		if _, err := r.ReadBytes(16); err != nil { // old_type_hash
			return st, err
		}
	}

	if isRefType && st.ScriptTypeIndex >= 0 {
		className, err := r.ReadCString()
		if err != nil {
			return st, err
		}
		namespace, err := r.ReadCString()
		if err != nil {
			return st, err
		}
		asmName, err := r.ReadCString()
		if err != nil {
			return st, err
		}
		st.ClassName, st.Namespace, st.AssemblyName = className, namespace, asmName
	} else if isRefType {
		className, err := r.ReadCString()
		if err != nil {
			return st, err
		}
		st.ClassName = className
	}

	if enableTypeTree {
		tree, err := typetree.Read(r, formatVersion)
		if err != nil {
			return st, err
		}
		st.TypeTree = tree

		if formatVersion >= 21 {
			depCount, err := r.ReadI32()
			if err != nil {
				return st, err
			}
			deps := make([]int32, depCount)
			for i := range deps {
				d, err := r.ReadI32()
				if err != nil {
					return st, err
				}
				deps[i] = d
			}
			st.TypeDependencies = deps
		}
	}

	return st, nil
}
