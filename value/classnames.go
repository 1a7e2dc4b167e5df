package value

import "fmt"

// classNames maps Unity's numeric class id to its canonical runtime class
// name. Supplemented from the Rust original's object.rs/asset.rs class
// table; only the common subset referenced by the rest of the pipeline and
// by the domain extractor boundary is carried here.
var classNames = map[int32]string{
	1:    "GameObject",
	2:    "Component",
	3:    "LevelGameManager",
	4:    "Transform",
	5:    "TimeManager",
	6:    "GlobalGameManager",
	8:    "Behaviour",
	9:    "GameManager",
	11:   "AudioManager",
	13:   "InputManager",
	18:   "EditorExtension",
	19:   "Physics2DSettings",
	20:   "Camera",
	21:   "Material",
	23:   "MeshRenderer",
	25:   "Renderer",
	27:   "Texture",
	28:   "Texture2D",
	29:   "OcclusionCullingSettings",
	30:   "GraphicsSettings",
	33:   "MeshFilter",
	41:   "OcclusionCullingData",
	43:   "Mesh",
	45:   "Shader",
	47:   "TextAsset",
	48:   "Shader",
	49:   "TextAsset",
	54:   "Rigidbody",
	55:   "PhysicsManager",
	56:   "Collider",
	57:   "Joint",
	58:   "CircleCollider2D",
	59:   "HingeJoint",
	60:   "PolygonCollider2D",
	61:   "BoxCollider2D",
	62:   "PhysicsMaterial2D",
	64:   "MeshCollider",
	65:   "BoxCollider",
	68:   "CompositeCollider2D",
	72:   "PhysicsOptimizationSettings",
	74:   "AnimationClip",
	75:   "ConstantForce",
	78:   "TagManager",
	81:   "AudioListener",
	82:   "AudioSource",
	83:   "AudioClip",
	84:   "RenderTexture",
	89:   "CustomRenderTexture",
	90:   "Avatar",
	91:   "AnimatorController",
	92:   "GUILayer",
	93:   "RuntimeAnimatorController",
	95:   "Animator",
	102:  "TextMesh",
	108:  "Light",
	109:  "CGProgram",
	111:  "Animation",
	114:  "MonoBehaviour",
	115:  "MonoScript",
	116:  "MonoManager",
	117:  "Texture3D",
	118:  "NewAnimationTrack",
	119:  "Projector",
	120:  "LineRenderer",
	121:  "Flare",
	122:  "Halo",
	123:  "LensFlare",
	124:  "Flare",
	128:  "Font",
	129:  "PlayerSettings",
	130:  "NamedObject",
	134:  "PhysicMaterial",
	135:  "SphereCollider",
	136:  "CapsuleCollider",
	137:  "SkinnedMeshRenderer",
	142:  "AssetBundle",
	143:  "CharacterController",
	144:  "CharacterJoint",
	145:  "SpringJoint",
	146:  "WheelCollider",
	147:  "ResourceManager",
	150:  "PreloadData",
	152:  "MovieTexture",
	153:  "ConfigurableJoint",
	154:  "TerrainCollider",
	156:  "TerrainData",
	157:  "LightmapSettings",
	158:  "WebCamTexture",
	159:  "EditorSettings",
	180:  "AudioReverbFilter",
	182:  "WindZone",
	183:  "Cloth",
	184:  "SubstanceArchive",
	185:  "ProceduralMaterial",
	186:  "ProceduralTexture",
	187:  "Cubemap",
	188:  "EditorBuildSettings",
	191:  "OcclusionCullingSettings",
	192:  "SortingGroup",
	193:  "LODGroup",
	198:  "ParticleSystem",
	199:  "ParticleSystemRenderer",
	200:  "ShaderVariantCollection",
	206:  "LensFlareComponentSRP",
	208:  "VideoPlayer",
	212:  "SpriteRenderer",
	213:  "Sprite",
	220:  "LightingDataAsset",
	221:  "LightProbes",
	222:  "SampleClip",
	225:  "NavMeshAgent",
	226:  "NavMeshSettings",
	227:  "ParticleSystemForceField",
	241:  "NavMeshData",
	271:  "NavMeshObstacle",
	280:  "TerrainLayer",
	319:  "PackedAssets",
	320:  "VFXRenderer",
	328:  "SpeedTreeWindAsset",
	329:  "AimConstraint",
	330:  "CanvasRenderer",
	331:  "Canvas",
	332:  "RectTransform",
	333:  "CanvasGroup",
	334:  "BillboardAsset",
	335:  "BillboardRenderer",
	336:  "SpeedTreeImporter",
	1001: "PrefabInstance",
	1002: "EditorExtensionImpl",
	1003: "AssetImporter",
	1006: "SceneAsset",
	1032: "LightmapParameters",
	1035: "LightingSettings",
	1045: "EditorExtensionImpl",
	1050: "GameObjectRecorder",
	1101: "PluginImporter",
	1110: "TrackedReferenceImporter",
}

// ClassName returns the canonical runtime class name for id, falling back
// to "ClassID_<n>" for unknown ids, matching the Rust original's fallback
// in object.rs.
func ClassName(id int32) string {
	if name, ok := classNames[id]; ok {
		return name
	}
	return fmt.Sprintf("ClassID_%d", id)
}
