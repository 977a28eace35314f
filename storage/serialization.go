// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/poiesic/canopy/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalNode serializes a Node to bytes.
func MarshalNode(node *core.Node) []byte {
	buf := make([]byte, core.NodeMUS.Size(*node))
	core.NodeMUS.Marshal(*node, buf)
	return buf
}

// UnmarshalNode deserializes a Node from bytes.
func UnmarshalNode(data []byte) (*core.Node, error) {
	node, _, err := core.NodeMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// MarshalCollection serializes a Collection to bytes.
func MarshalCollection(col *core.Collection) []byte {
	buf := make([]byte, core.CollectionMUS.Size(*col))
	core.CollectionMUS.Marshal(*col, buf)
	return buf
}

// UnmarshalCollection deserializes a Collection from bytes.
func UnmarshalCollection(data []byte) (*core.Collection, error) {
	col, _, err := core.CollectionMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &col, nil
}

// MarshalLeafVector serializes a LeafVector to bytes.
func MarshalLeafVector(vec *core.LeafVector) []byte {
	buf := make([]byte, core.LeafVectorMUS.Size(*vec))
	core.LeafVectorMUS.Marshal(*vec, buf)
	return buf
}

// UnmarshalLeafVector deserializes a LeafVector from bytes.
func UnmarshalLeafVector(data []byte) (*core.LeafVector, error) {
	vec, _, err := core.LeafVectorMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &vec, nil
}
